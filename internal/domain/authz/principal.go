package authz

import "context"

// Role names carried as claims on authenticated principals.
const (
	RoleAdmin       = "ADMIN"
	RoleUser        = "USER"
	RoleUserManager = "USER MANAGER"
)

// Principal captures the authenticated caller's identity and role claims for
// a single request. It is immutable once constructed.
type Principal struct {
	ID    string
	Name  string
	Email string
	Roles []string
}

// HasRole checks if the principal carries the given role claim.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PrincipalResolver yields the principal for the ambient request context.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context) (*Principal, error)
}
