package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/account"
	"worktrack/tracker-api/internal/domain/identity"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/interfaces/httpserver/handlers"
)

// MockAccountService is a mock implementation of account.Service.
type MockAccountService struct {
	RegisterFunc       func(ctx context.Context, command *account.RegisterCommand) (*user.User, error)
	LoginFunc          func(ctx context.Context, command *account.LoginCommand) (*identity.TokenPair, error)
	ChangePasswordFunc func(ctx context.Context, command *account.ChangePasswordCommand) error
}

func (m *MockAccountService) Register(ctx context.Context, command *account.RegisterCommand) (*user.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, command)
	}
	return nil, nil
}

func (m *MockAccountService) Login(ctx context.Context, command *account.LoginCommand) (*identity.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, command)
	}
	return nil, nil
}

func (m *MockAccountService) ChangePassword(ctx context.Context, command *account.ChangePasswordCommand) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, command)
	}
	return nil
}

func setupAccountTestRouter(handler *handlers.AccountHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", handler.Register)
		v1.POST("/auth/login", handler.Login)
		v1.POST("/auth/change-password", handler.ChangePassword)
	}
	return r
}

func TestAccountHandler_Register(t *testing.T) {
	mockService := &MockAccountService{
		RegisterFunc: func(ctx context.Context, command *account.RegisterCommand) (*user.User, error) {
			return &user.User{ID: "user-1", Name: command.Name, Email: command.Email}, nil
		},
	}

	handler := handlers.NewAccountHandler(mockService, zerolog.Nop())
	router := setupAccountTestRouter(handler)

	body := bytes.NewBufferString(`{"email":"alice@example.com","name":"Alice","password":"secret1!","confirm_password":"secret1!"}`)
	req, _ := http.NewRequest("POST", "/v1/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["id"] != "user-1" {
		t.Errorf("Expected user id 'user-1', got %v", response["id"])
	}
}

func TestAccountHandler_Login(t *testing.T) {
	mockService := &MockAccountService{
		LoginFunc: func(ctx context.Context, command *account.LoginCommand) (*identity.TokenPair, error) {
			return &identity.TokenPair{
				AccessToken: "token-abc",
				TokenType:   "Bearer",
				ExpiresIn:   86400,
			}, nil
		},
	}

	handler := handlers.NewAccountHandler(mockService, zerolog.Nop())
	router := setupAccountTestRouter(handler)

	body := bytes.NewBufferString(`{"email":"alice@example.com","password":"secret1!"}`)
	req, _ := http.NewRequest("POST", "/v1/auth/login", body)
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
	if response["access_token"] != "token-abc" {
		t.Errorf("Expected access token, got %v", response["access_token"])
	}
	if response["token_type"] != "Bearer" {
		t.Errorf("Expected Bearer token type, got %v", response["token_type"])
	}
}

func TestAccountHandler_Login_BadCredentials(t *testing.T) {
	mockService := &MockAccountService{
		LoginFunc: func(ctx context.Context, command *account.LoginCommand) (*identity.TokenPair, error) {
			return nil, &identity.LoginError{Message: "Bad user name or password combination."}
		},
	}

	handler := handlers.NewAccountHandler(mockService, zerolog.Nop())
	router := setupAccountTestRouter(handler)

	body := bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong"}`)
	req, _ := http.NewRequest("POST", "/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["error"] != "Bad user name or password combination." {
		t.Errorf("Expected login error message, got %v", response["error"])
	}
}

func TestAccountHandler_ChangePassword(t *testing.T) {
	mockService := &MockAccountService{
		ChangePasswordFunc: func(ctx context.Context, command *account.ChangePasswordCommand) error {
			if command.CurrentPassword != "old-pass1" || command.NewPassword != "new-pass1" {
				t.Errorf("Unexpected command: %+v", command)
			}
			return nil
		},
	}

	handler := handlers.NewAccountHandler(mockService, zerolog.Nop())
	router := setupAccountTestRouter(handler)

	body := bytes.NewBufferString(`{"current_password":"old-pass1","new_password":"new-pass1","confirm_new_password":"new-pass1"}`)
	req, _ := http.NewRequest("POST", "/v1/auth/change-password", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
}

func TestAccountHandler_ChangePassword_Unauthenticated(t *testing.T) {
	mockService := &MockAccountService{
		ChangePasswordFunc: func(ctx context.Context, command *account.ChangePasswordCommand) error {
			return &identity.ChangePasswordError{Message: "Unauthorized."}
		},
	}

	handler := handlers.NewAccountHandler(mockService, zerolog.Nop())
	router := setupAccountTestRouter(handler)

	body := bytes.NewBufferString(`{"current_password":"old-pass1","new_password":"new-pass1","confirm_new_password":"new-pass1"}`)
	req, _ := http.NewRequest("POST", "/v1/auth/change-password", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}
