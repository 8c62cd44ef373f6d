// Package account holds self-service account operations: registration,
// login and password changes. User management by admins lives in the user
// package; this one is what an anonymous visitor or the account owner
// themselves can do.
package account

// RegisterCommand creates a new account with the USER role.
type RegisterCommand struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginCommand exchanges credentials for a token.
type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordCommand rotates the caller's own password.
type ChangePasswordCommand struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}
