package v1

import (
	"github.com/gin-gonic/gin"

	"worktrack/tracker-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// RegisterPublic attaches the v1 routes that must be reachable without a
// token. Called before the auth middleware is installed.
func (r *Routes) RegisterPublic(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerPublicAccountRoutes(group, r.handlers.Account)
}

// Register attaches the authenticated v1 routes under the /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerTimeEntryRoutes(group, r.handlers.TimeEntry)
	registerUserRoutes(group, r.handlers.User)
	registerAccountRoutes(group, r.handlers.Account)
}
