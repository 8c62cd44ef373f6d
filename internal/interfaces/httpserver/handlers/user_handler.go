package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/infrastructure/observability"
	"worktrack/tracker-api/internal/interfaces/httpserver/requests"
	"worktrack/tracker-api/internal/interfaces/httpserver/responses"
)

// UserHandler exposes HTTP entrypoints for the users API.
type UserHandler struct {
	service user.Service
	log     zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service user.Service, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With().Str("handler", "user").Logger(),
	}
}

// Upsert handles PUT /v1/users/:id. Creating a user also provisions their
// identity account with the configured default password.
func (h *UserHandler) Upsert(c *gin.Context) {
	var req requests.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	ctx, span := observability.StartUserSpan(c.Request.Context(), "upsert", c.Param("id"))
	defer span.End()

	u, err := h.service.Upsert(ctx, &user.UpsertCommand{
		ID:    c.Param("id"),
		Name:  req.Name,
		Email: req.Email,
		Roles: req.Roles,
	})
	recordAuthz(authz.ResourceUser, authz.OperationUpsert, err)
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.MapUser(u))
}

// Delete handles DELETE /v1/users/:id. The force query parameter cascades
// the user's time entries.
func (h *UserHandler) Delete(c *gin.Context) {
	force, _ := strconv.ParseBool(c.Query("force"))

	ctx, span := observability.StartUserSpan(c.Request.Context(), "delete", c.Param("id"))
	defer span.End()

	err := h.service.Delete(ctx, &user.DeleteCommand{
		UserID: c.Param("id"),
		Force:  force,
	})
	recordAuthz(authz.ResourceUser, authz.OperationDelete, err)
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles GET /v1/users.
func (h *UserHandler) List(c *gin.Context) {
	var req requests.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	page, err := h.service.ListWithRoles(c.Request.Context(), &user.ListQuery{
		ExcludeMe: req.ExcludeMe,
		Query:     req.Query,
		Top:       req.Top,
		OrderBy:   req.OrderBy,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Me handles GET /v1/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	me, err := h.service.GetCurrentUserWithRoles(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, me)
}

// UpdateSettings handles PUT /v1/users/me/settings.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req requests.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.service.UpdateCurrentUserSettings(c.Request.Context(), &user.UpdateSettingsCommand{
		Name:                       req.Name,
		PreferredWorkingHourPerDay: req.PreferredWorkingHourPerDay,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
