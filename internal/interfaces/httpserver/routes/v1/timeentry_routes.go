package v1

import (
	"github.com/gin-gonic/gin"

	"worktrack/tracker-api/internal/interfaces/httpserver/handlers"
)

func registerTimeEntryRoutes(router gin.IRoutes, handler *handlers.TimeEntryHandler) {
	router.GET("/time-entries", handler.List)
	router.GET("/time-entries/report", handler.SummaryReport)
	router.PUT("/time-entries/:id", handler.Upsert)
	router.DELETE("/time-entries/:id", handler.Delete)
}
