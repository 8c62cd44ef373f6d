package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/timeentry"
	"worktrack/tracker-api/internal/domain/validation"
	"worktrack/tracker-api/internal/interfaces/httpserver/handlers"
)

// MockTimeEntryService is a mock implementation of timeentry.Service.
type MockTimeEntryService struct {
	UpsertFunc                func(ctx context.Context, command *timeentry.UpsertCommand) (*timeentry.TimeEntry, error)
	DeleteFunc                func(ctx context.Context, command *timeentry.DeleteCommand) error
	ListFunc                  func(ctx context.Context, q *timeentry.ListQuery) (*timeentry.PagedResult, error)
	GenerateSummaryReportFunc func(ctx context.Context, q *timeentry.SummaryQuery) ([]*timeentry.SummaryReportItem, error)
}

func (m *MockTimeEntryService) Upsert(ctx context.Context, command *timeentry.UpsertCommand) (*timeentry.TimeEntry, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, command)
	}
	return nil, nil
}

func (m *MockTimeEntryService) Delete(ctx context.Context, command *timeentry.DeleteCommand) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, command)
	}
	return nil
}

func (m *MockTimeEntryService) List(ctx context.Context, q *timeentry.ListQuery) (*timeentry.PagedResult, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockTimeEntryService) GenerateSummaryReport(ctx context.Context, q *timeentry.SummaryQuery) ([]*timeentry.SummaryReportItem, error) {
	if m.GenerateSummaryReportFunc != nil {
		return m.GenerateSummaryReportFunc(ctx, q)
	}
	return nil, nil
}

func setupTimeEntryTestRouter(handler *handlers.TimeEntryHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.GET("/time-entries", handler.List)
		v1.GET("/time-entries/report", handler.SummaryReport)
		v1.PUT("/time-entries/:id", handler.Upsert)
		v1.DELETE("/time-entries/:id", handler.Delete)
	}
	return r
}

func TestTimeEntryHandler_Upsert(t *testing.T) {
	var received *timeentry.UpsertCommand
	mockService := &MockTimeEntryService{
		UpsertFunc: func(ctx context.Context, command *timeentry.UpsertCommand) (*timeentry.TimeEntry, error) {
			received = command
			return &timeentry.TimeEntry{
				ID:       command.ID,
				Date:     command.Date,
				Note:     command.Note,
				Duration: command.Duration,
				OwnerID:  command.OwnerID,
			}, nil
		},
	}

	handler := handlers.NewTimeEntryHandler(mockService, zerolog.Nop())
	router := setupTimeEntryTestRouter(handler)

	body := bytes.NewBufferString(`{"date":"2025-03-10T00:00:00Z","note":"standup prep","duration":1.5,"owner_id":"user-1"}`)
	req, _ := http.NewRequest("PUT", "/v1/time-entries/entry-1", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if received == nil {
		t.Fatal("Expected service to be called")
	}
	if received.ID != "entry-1" {
		t.Errorf("Expected entry ID from URL path, got %q", received.ID)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["id"] != "entry-1" {
		t.Errorf("Expected entry id 'entry-1', got %v", response["id"])
	}
	if response["owner_id"] != "user-1" {
		t.Errorf("Expected owner_id 'user-1', got %v", response["owner_id"])
	}
}

func TestTimeEntryHandler_Upsert_ValidationError(t *testing.T) {
	mockService := &MockTimeEntryService{
		UpsertFunc: func(ctx context.Context, command *timeentry.UpsertCommand) (*timeentry.TimeEntry, error) {
			return nil, validation.NewError("Note can not be empty.")
		},
	}

	handler := handlers.NewTimeEntryHandler(mockService, zerolog.Nop())
	router := setupTimeEntryTestRouter(handler)

	body := bytes.NewBufferString(`{"date":"2025-03-10T00:00:00Z","note":"","duration":1,"owner_id":"user-1"}`)
	req, _ := http.NewRequest("PUT", "/v1/time-entries/entry-1", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["error"] != "Note can not be empty." {
		t.Errorf("Expected validation message, got %v", response["error"])
	}
}

func TestTimeEntryHandler_Delete(t *testing.T) {
	deleteCalled := false
	mockService := &MockTimeEntryService{
		DeleteFunc: func(ctx context.Context, command *timeentry.DeleteCommand) error {
			deleteCalled = true
			if command.TimeEntryID != "entry-9" {
				t.Errorf("Expected entry ID 'entry-9', got %q", command.TimeEntryID)
			}
			return nil
		},
	}

	handler := handlers.NewTimeEntryHandler(mockService, zerolog.Nop())
	router := setupTimeEntryTestRouter(handler)

	req, _ := http.NewRequest("DELETE", "/v1/time-entries/entry-9", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if !deleteCalled {
		t.Error("Expected delete to be called")
	}
}

func TestTimeEntryHandler_List(t *testing.T) {
	mockService := &MockTimeEntryService{
		ListFunc: func(ctx context.Context, q *timeentry.ListQuery) (*timeentry.PagedResult, error) {
			if q.Query != `duration gt 4` {
				t.Errorf("Expected query passthrough, got %q", q.Query)
			}
			if !q.IncludeAllUsers {
				t.Error("Expected IncludeAllUsers to be set")
			}
			return &timeentry.PagedResult{
				TotalCount: 1,
				Results: []*timeentry.EntryWithOwnerName{
					{
						ID:        "entry-1",
						Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
						Note:      "feature work",
						Duration:  5,
						OwnerID:   "user-1",
						OwnerName: "Alice",
					},
				},
			}, nil
		},
	}

	handler := handlers.NewTimeEntryHandler(mockService, zerolog.Nop())
	router := setupTimeEntryTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/time-entries?query=duration+gt+4&include_all_users=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["total_count"] != 1.0 {
		t.Errorf("Expected total_count 1, got %v", response["total_count"])
	}
}

func TestTimeEntryHandler_SummaryReport(t *testing.T) {
	mockService := &MockTimeEntryService{
		GenerateSummaryReportFunc: func(ctx context.Context, q *timeentry.SummaryQuery) ([]*timeentry.SummaryReportItem, error) {
			return []*timeentry.SummaryReportItem{
				{
					Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
					TotalTime: 7,
					Notes:     []string{"feature work", "review"},
					OwnerID:   "user-1",
					OwnerName: "Alice",
				},
			}, nil
		},
	}

	handler := handlers.NewTimeEntryHandler(mockService, zerolog.Nop())
	router := setupTimeEntryTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/time-entries/report", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Items []map[string]interface{} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Items) != 1 {
		t.Fatalf("Expected 1 report item, got %d", len(response.Items))
	}
	if response.Items[0]["total_time"] != 7.0 {
		t.Errorf("Expected total_time 7, got %v", response.Items[0]["total_time"])
	}
}
