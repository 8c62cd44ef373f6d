package v1

import (
	"github.com/gin-gonic/gin"

	"worktrack/tracker-api/internal/interfaces/httpserver/handlers"
)

func registerPublicAccountRoutes(router gin.IRoutes, handler *handlers.AccountHandler) {
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
}

func registerAccountRoutes(router gin.IRoutes, handler *handlers.AccountHandler) {
	router.POST("/auth/change-password", handler.ChangePassword)
}
