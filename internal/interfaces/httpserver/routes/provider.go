package routes

import (
	"github.com/gin-gonic/gin"

	"worktrack/tracker-api/internal/interfaces/httpserver/handlers"
	v1 "worktrack/tracker-api/internal/interfaces/httpserver/routes/v1"
)

// Provider coordinates all route registrations.
type Provider struct {
	V1 *v1.Routes
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		V1: v1.NewRoutes(handlerProvider),
	}
}

// RegisterPublic attaches routes served without authentication.
func (p *Provider) RegisterPublic(engine *gin.Engine) {
	p.V1.RegisterPublic(engine)
}

// Register attaches the authenticated routes to the gin engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.V1.Register(engine)
}
