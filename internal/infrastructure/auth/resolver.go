package auth

import (
	"context"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/identity"
	"worktrack/tracker-api/internal/domain/user"
)

// Resolver implements user.CurrentUserResolver on top of the request
// context principal. When the token was issued by an external provider the
// matching profile row may not exist yet; ResolveUser provisions it from
// the token claims on first sight.
type Resolver struct {
	users user.Repository
}

// NewResolver constructs the resolver.
func NewResolver(users user.Repository) *Resolver {
	return &Resolver{users: users}
}

// ResolvePrincipal returns the authenticated principal from the context.
func (r *Resolver) ResolvePrincipal(ctx context.Context) (*authz.Principal, error) {
	principal := PrincipalFromContext(ctx)
	if principal == nil {
		return nil, &identity.OperationError{Message: "no authenticated principal in context"}
	}
	return principal, nil
}

// ResolveUser returns the caller's user row, creating it from the token
// claims when missing.
func (r *Resolver) ResolveUser(ctx context.Context) (*user.User, error) {
	principal, err := r.ResolvePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	u, err := r.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	u = &user.User{
		ID:    principal.ID,
		Email: principal.Email,
		Name:  principal.Name,
	}
	if err := r.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
