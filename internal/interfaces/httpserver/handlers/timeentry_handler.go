package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/timeentry"
	"worktrack/tracker-api/internal/infrastructure/metrics"
	"worktrack/tracker-api/internal/infrastructure/observability"
	"worktrack/tracker-api/internal/interfaces/httpserver/requests"
	"worktrack/tracker-api/internal/interfaces/httpserver/responses"
)

// TimeEntryHandler exposes HTTP entrypoints for the time entries API.
type TimeEntryHandler struct {
	service timeentry.Service
	log     zerolog.Logger
}

// NewTimeEntryHandler constructs the handler.
func NewTimeEntryHandler(service timeentry.Service, log zerolog.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		service: service,
		log:     log.With().Str("handler", "timeentry").Logger(),
	}
}

// Upsert handles PUT /v1/time-entries/:id. The entry is created when the ID
// is new and replaced otherwise.
func (h *TimeEntryHandler) Upsert(c *gin.Context) {
	var req requests.UpsertTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	ctx, span := observability.StartEntrySpan(c.Request.Context(), "upsert", c.Param("id"))
	defer span.End()

	entry, err := h.service.Upsert(ctx, &timeentry.UpsertCommand{
		ID:       c.Param("id"),
		Date:     req.Date,
		Note:     req.Note,
		Duration: req.Duration,
		OwnerID:  req.OwnerID,
	})
	recordAuthz(authz.ResourceTimeEntry, authz.OperationUpsert, err)
	if err != nil {
		observability.RecordError(span, err)
		metrics.RecordTimeEntryWrite("upsert", "error")
		responses.HandleError(c, err)
		return
	}

	metrics.RecordTimeEntryWrite("upsert", "ok")
	c.JSON(http.StatusOK, responses.MapTimeEntry(entry))
}

// Delete handles DELETE /v1/time-entries/:id. Deleting a missing entry
// succeeds.
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	ctx, span := observability.StartEntrySpan(c.Request.Context(), "delete", c.Param("id"))
	defer span.End()

	err := h.service.Delete(ctx, &timeentry.DeleteCommand{TimeEntryID: c.Param("id")})
	recordAuthz(authz.ResourceTimeEntry, authz.OperationDelete, err)
	if err != nil {
		observability.RecordError(span, err)
		metrics.RecordTimeEntryWrite("delete", "error")
		responses.HandleError(c, err)
		return
	}

	metrics.RecordTimeEntryWrite("delete", "ok")
	c.Status(http.StatusNoContent)
}

// List handles GET /v1/time-entries.
func (h *TimeEntryHandler) List(c *gin.Context) {
	var req requests.ListTimeEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	page, err := h.service.List(c.Request.Context(), &timeentry.ListQuery{
		Query:           req.Query,
		IncludeAllUsers: req.IncludeAllUsers,
		PageSize:        req.PageSize,
		OrderBy:         req.OrderBy,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// SummaryReport handles GET /v1/time-entries/report.
func (h *TimeEntryHandler) SummaryReport(c *gin.Context) {
	var req requests.SummaryReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	ctx, span := observability.StartReportSpan(c.Request.Context(), req.IncludeAllUsers)
	defer span.End()

	items, err := h.service.GenerateSummaryReport(ctx, &timeentry.SummaryQuery{
		Query:                        req.Query,
		IncludeTimeEntriesOfAllUsers: req.IncludeAllUsers,
	})
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.SummaryReportResponse{Items: items})
}
