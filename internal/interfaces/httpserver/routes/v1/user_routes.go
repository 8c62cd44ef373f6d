package v1

import (
	"github.com/gin-gonic/gin"

	"worktrack/tracker-api/internal/interfaces/httpserver/handlers"
)

func registerUserRoutes(router gin.IRoutes, handler *handlers.UserHandler) {
	router.GET("/users", handler.List)
	router.GET("/users/me", handler.Me)
	router.PUT("/users/me/settings", handler.UpdateSettings)
	router.PUT("/users/:id", handler.Upsert)
	router.DELETE("/users/:id", handler.Delete)
}
