package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/account"
	"worktrack/tracker-api/internal/infrastructure/metrics"
	"worktrack/tracker-api/internal/interfaces/httpserver/requests"
	"worktrack/tracker-api/internal/interfaces/httpserver/responses"
)

// AccountHandler exposes self-service account endpoints: registration,
// login and password rotation.
type AccountHandler struct {
	service account.Service
	log     zerolog.Logger
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(service account.Service, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log.With().Str("handler", "account").Logger(),
	}
}

// Register handles POST /v1/auth/register. Public.
func (h *AccountHandler) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	u, err := h.service.Register(c.Request.Context(), &account.RegisterCommand{
		Email:           req.Email,
		Name:            req.Name,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, responses.MapUser(u))
}

// Login handles POST /v1/auth/login. Public.
func (h *AccountHandler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	pair, err := h.service.Login(c.Request.Context(), &account.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.RecordLoginAttempt("failure")
		responses.HandleError(c, err)
		return
	}

	metrics.RecordLoginAttempt("success")
	c.JSON(http.StatusOK, pair)
}

// ChangePassword handles POST /v1/auth/change-password for the
// authenticated caller.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req requests.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), &account.ChangePasswordCommand{
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
