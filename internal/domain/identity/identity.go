// Package identity defines the boundary to the external identity and
// credential store. Account records live beside but apart from the user
// rows owned by the user repository.
package identity

import "context"

// Account is the identity-store side of a user: credentials plus the
// profile attributes the store keeps for token issuance.
type Account struct {
	ID       string
	Email    string
	Name     string
	Password string
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Manager administers identity accounts and role assignments. All calls may
// fail with identity-specific errors; callers propagate those unmodified.
type Manager interface {
	// GetRoles returns the role names assigned to the account.
	GetRoles(ctx context.Context, userID string) ([]string, error)

	// ReplaceRoles replaces the account's role set with the given roles.
	ReplaceRoles(ctx context.Context, userID string, roles []string) error

	// CountUsersInRoles returns the number of accounts per given role name.
	CountUsersInRoles(ctx context.Context, roles ...string) (map[string]int, error)

	// CreateAccount provisions a new identity account. When account.ID is
	// empty the store assigns one; the final ID is returned.
	CreateAccount(ctx context.Context, account *Account) (string, error)

	// RemoveAccount deletes the identity account for the user.
	RemoveAccount(ctx context.Context, userID string) error

	// ChangePassword verifies the old password and stores the new one.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// Authenticator verifies credentials and issues access tokens.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
}

// OperationError reports a failed identity-store operation.
type OperationError struct {
	Message string
	Cause   error
}

func (e *OperationError) Error() string { return e.Message }

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error { return e.Cause }

// LoginError reports a rejected login attempt.
type LoginError struct {
	Message string
	Cause   error
}

func (e *LoginError) Error() string { return e.Message }

// Unwrap returns the underlying cause.
func (e *LoginError) Unwrap() error { return e.Cause }

// RegistrationError reports a failed account registration.
type RegistrationError struct {
	Message string
	Cause   error
}

func (e *RegistrationError) Error() string { return e.Message }

// Unwrap returns the underlying cause.
func (e *RegistrationError) Unwrap() error { return e.Cause }

// ChangePasswordError reports a failed password change.
type ChangePasswordError struct {
	Message string
	Cause   error
}

func (e *ChangePasswordError) Error() string { return e.Message }

// Unwrap returns the underlying cause.
func (e *ChangePasswordError) Unwrap() error { return e.Cause }
