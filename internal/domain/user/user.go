// Package user provides the user aggregate: account profiles, role
// management and deletion rules.
package user

import (
	"context"

	"worktrack/tracker-api/internal/domain/authz"
)

// User is an application user profile. TimeEntryCount is populated by the
// repository on reads so deletion rules can check for dependent entries
// without loading them.
type User struct {
	ID                         string
	Email                      string
	Name                       string
	PreferredWorkingHourPerDay float64
	TimeEntryCount             int
}

// WithRoles decorates a user with the roles resolved from the identity store.
type WithRoles struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// NewWithRoles builds the decorated view from a user row.
func NewWithRoles(u *User) *WithRoles {
	return &WithRoles{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Roles: []string{},
	}
}

// CurrentUserData is the self view returned to the authenticated caller.
type CurrentUserData struct {
	ID                         string   `json:"id"`
	Name                       string   `json:"name"`
	Email                      string   `json:"email"`
	PreferredWorkingHourPerDay float64  `json:"preferred_working_hour_per_day"`
	Roles                      []string `json:"roles"`
}

// CurrentUserResolver resolves the caller from the ambient request context,
// both as a raw principal for authorization calls and as the loaded user row.
type CurrentUserResolver interface {
	ResolvePrincipal(ctx context.Context) (*authz.Principal, error)
	ResolveUser(ctx context.Context) (*User, error)
}

// UpsertCommand creates or updates a user profile. Roles, when non-nil,
// replaces the user's role assignments.
type UpsertCommand struct {
	ID    string
	Name  string
	Email string
	Roles []string
}

// DeleteCommand removes a user. Force cascades the user's time entries.
type DeleteCommand struct {
	UserID string
	Force  bool
}

// UpdateSettingsCommand updates the caller's own profile preferences.
type UpdateSettingsCommand struct {
	Name                       string
	PreferredWorkingHourPerDay float64
}

// ListQuery selects users for the paged roles listing.
type ListQuery struct {
	ExcludeMe bool
	Query     string
	Top       int
	OrderBy   string
}
