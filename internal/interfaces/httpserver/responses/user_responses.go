package responses

import (
	"worktrack/tracker-api/internal/domain/user"
)

// UserResponse is the payload for a single managed user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MapUser converts a domain user to its response payload.
func MapUser(u *user.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
