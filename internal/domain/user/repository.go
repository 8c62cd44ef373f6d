package user

import (
	"context"
	"errors"

	"worktrack/tracker-api/internal/domain/query"
)

// ErrRelationshipConflict is returned by Delete when dependent rows block a
// non-cascading delete.
var ErrRelationshipConflict = errors.New("delete blocked by dependent records")

// ErrDeleteConflict is the service-level translation of a blocked delete.
var ErrDeleteConflict = errors.New("there are time entries associated with this user, try force delete")

// Filter selects users for a listing.
type Filter struct {
	// ExcludeID drops a single user (the caller) from the result.
	ExcludeID *string

	// Spec is the parsed external query, optional.
	Spec *query.Spec

	// Limit caps the page size after the spec's own top is applied.
	Limit int
}

// Repository defines storage operations for users. Find methods return
// (nil, nil) for missing rows.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)

	// IsEmailUnique reports whether no other user than id holds the email.
	IsEmailUnique(ctx context.Context, id, email string) (bool, error)

	// List returns a page of users plus the total count before paging.
	// Without an explicit order in the spec users come back sorted by name.
	List(ctx context.Context, filter Filter) ([]*User, int64, error)

	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error

	// Delete removes the user row. With cascade false the delete fails with
	// ErrRelationshipConflict when time entries still reference the user;
	// with cascade true dependent entries are removed as well.
	Delete(ctx context.Context, u *User, cascade bool) error
}
