package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/interfaces/httpserver/handlers"
)

// MockUserService is a mock implementation of user.Service.
type MockUserService struct {
	UpsertFunc                    func(ctx context.Context, command *user.UpsertCommand) (*user.User, error)
	DeleteFunc                    func(ctx context.Context, command *user.DeleteCommand) error
	ListWithRolesFunc             func(ctx context.Context, q *user.ListQuery) (*user.PagedResult, error)
	GetCurrentUserWithRolesFunc   func(ctx context.Context) (*user.CurrentUserData, error)
	UpdateCurrentUserSettingsFunc func(ctx context.Context, command *user.UpdateSettingsCommand) error
}

func (m *MockUserService) Upsert(ctx context.Context, command *user.UpsertCommand) (*user.User, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, command)
	}
	return nil, nil
}

func (m *MockUserService) Delete(ctx context.Context, command *user.DeleteCommand) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, command)
	}
	return nil
}

func (m *MockUserService) ListWithRoles(ctx context.Context, q *user.ListQuery) (*user.PagedResult, error) {
	if m.ListWithRolesFunc != nil {
		return m.ListWithRolesFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockUserService) GetCurrentUserWithRoles(ctx context.Context) (*user.CurrentUserData, error) {
	if m.GetCurrentUserWithRolesFunc != nil {
		return m.GetCurrentUserWithRolesFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserService) UpdateCurrentUserSettings(ctx context.Context, command *user.UpdateSettingsCommand) error {
	if m.UpdateCurrentUserSettingsFunc != nil {
		return m.UpdateCurrentUserSettingsFunc(ctx, command)
	}
	return nil
}

func setupUserTestRouter(handler *handlers.UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.GET("/users", handler.List)
		v1.GET("/users/me", handler.Me)
		v1.PUT("/users/me/settings", handler.UpdateSettings)
		v1.PUT("/users/:id", handler.Upsert)
		v1.DELETE("/users/:id", handler.Delete)
	}
	return r
}

func TestUserHandler_Upsert(t *testing.T) {
	mockService := &MockUserService{
		UpsertFunc: func(ctx context.Context, command *user.UpsertCommand) (*user.User, error) {
			if command.ID != "user-7" {
				t.Errorf("Expected user ID from URL path, got %q", command.ID)
			}
			if len(command.Roles) != 1 || command.Roles[0] != authz.RoleUserManager {
				t.Errorf("Expected roles passthrough, got %v", command.Roles)
			}
			return &user.User{ID: command.ID, Name: command.Name, Email: command.Email}, nil
		},
	}

	handler := handlers.NewUserHandler(mockService, zerolog.Nop())
	router := setupUserTestRouter(handler)

	body := bytes.NewBufferString(`{"name":"Bob","email":"bob@example.com","roles":["USER MANAGER"]}`)
	req, _ := http.NewRequest("PUT", "/v1/users/user-7", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["email"] != "bob@example.com" {
		t.Errorf("Expected email 'bob@example.com', got %v", response["email"])
	}
}

func TestUserHandler_Upsert_MissingEmail(t *testing.T) {
	handler := handlers.NewUserHandler(&MockUserService{}, zerolog.Nop())
	router := setupUserTestRouter(handler)

	body := bytes.NewBufferString(`{"name":"Bob"}`)
	req, _ := http.NewRequest("PUT", "/v1/users/user-7", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestUserHandler_Delete_ForceFlag(t *testing.T) {
	mockService := &MockUserService{
		DeleteFunc: func(ctx context.Context, command *user.DeleteCommand) error {
			if command.UserID != "user-7" {
				t.Errorf("Expected user ID 'user-7', got %q", command.UserID)
			}
			if !command.Force {
				t.Error("Expected force flag to be set")
			}
			return nil
		},
	}

	handler := handlers.NewUserHandler(mockService, zerolog.Nop())
	router := setupUserTestRouter(handler)

	req, _ := http.NewRequest("DELETE", "/v1/users/user-7?force=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
}

func TestUserHandler_Delete_Conflict(t *testing.T) {
	mockService := &MockUserService{
		DeleteFunc: func(ctx context.Context, command *user.DeleteCommand) error {
			return fmt.Errorf("delete user %s: %w", command.UserID, user.ErrDeleteConflict)
		},
	}

	handler := handlers.NewUserHandler(mockService, zerolog.Nop())
	router := setupUserTestRouter(handler)

	req, _ := http.NewRequest("DELETE", "/v1/users/user-7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestUserHandler_Delete_Forbidden(t *testing.T) {
	mockService := &MockUserService{
		DeleteFunc: func(ctx context.Context, command *user.DeleteCommand) error {
			return &authz.Error{Reasons: []string{"You are not allowed to manage users."}}
		},
	}

	handler := handlers.NewUserHandler(mockService, zerolog.Nop())
	router := setupUserTestRouter(handler)

	req, _ := http.NewRequest("DELETE", "/v1/users/user-7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["error"] != "You are not allowed to manage users." {
		t.Errorf("Expected denial reason, got %v", response["error"])
	}
}

func TestUserHandler_List(t *testing.T) {
	mockService := &MockUserService{
		ListWithRolesFunc: func(ctx context.Context, q *user.ListQuery) (*user.PagedResult, error) {
			if !q.ExcludeMe {
				t.Error("Expected ExcludeMe to be set")
			}
			if q.Top != 5 {
				t.Errorf("Expected top 5, got %d", q.Top)
			}
			return &user.PagedResult{
				TotalCount: 2,
				Results: []*user.WithRoles{
					{ID: "user-1", Name: "Alice", Email: "alice@example.com", Roles: []string{authz.RoleAdmin}},
					{ID: "user-2", Name: "Bob", Email: "bob@example.com", Roles: []string{authz.RoleUser}},
				},
			}, nil
		},
	}

	handler := handlers.NewUserHandler(mockService, zerolog.Nop())
	router := setupUserTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/users?exclude_me=true&top=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		TotalCount int64                    `json:"total_count"`
		Results    []map[string]interface{} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.TotalCount != 2 {
		t.Errorf("Expected total_count 2, got %d", response.TotalCount)
	}
	if len(response.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(response.Results))
	}
}

func TestUserHandler_Me(t *testing.T) {
	mockService := &MockUserService{
		GetCurrentUserWithRolesFunc: func(ctx context.Context) (*user.CurrentUserData, error) {
			return &user.CurrentUserData{
				ID:                         "user-1",
				Name:                       "Alice",
				Email:                      "alice@example.com",
				PreferredWorkingHourPerDay: 8,
				Roles:                      []string{authz.RoleAdmin},
			}, nil
		},
	}

	handler := handlers.NewUserHandler(mockService, zerolog.Nop())
	router := setupUserTestRouter(handler)

	req, _ := http.NewRequest("GET", "/v1/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["preferred_working_hour_per_day"] != 8.0 {
		t.Errorf("Expected preferred working hours 8, got %v", response["preferred_working_hour_per_day"])
	}
}

func TestUserHandler_UpdateSettings(t *testing.T) {
	mockService := &MockUserService{
		UpdateCurrentUserSettingsFunc: func(ctx context.Context, command *user.UpdateSettingsCommand) error {
			if command.Name != "Alice B" {
				t.Errorf("Expected name 'Alice B', got %q", command.Name)
			}
			if command.PreferredWorkingHourPerDay != 6.5 {
				t.Errorf("Expected preferred hours 6.5, got %v", command.PreferredWorkingHourPerDay)
			}
			return nil
		},
	}

	handler := handlers.NewUserHandler(mockService, zerolog.Nop())
	router := setupUserTestRouter(handler)

	body := bytes.NewBufferString(`{"name":"Alice B","preferred_working_hour_per_day":6.5}`)
	req, _ := http.NewRequest("PUT", "/v1/users/me/settings", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
}
