package requirements

import (
	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/user"
)

// UserRequirement authorizes operations against a concrete user. Admins may
// do anything; user managers may do anything except force delete, since a
// force delete destroys another user's time records.
type UserRequirement struct{}

func NewUserRequirement() *UserRequirement {
	return &UserRequirement{}
}

func (r *UserRequirement) CanValidate(_ authz.Operation, resource any) bool {
	_, ok := resource.(*user.User)
	return ok
}

func (r *UserRequirement) Validate(principal *authz.Principal, operation authz.Operation, _ any) authz.RequirementResult {
	return validateUserManagement(principal, operation)
}

// UserTypeRequirement mirrors UserRequirement at the collection level.
type UserTypeRequirement struct{}

func NewUserTypeRequirement() *UserTypeRequirement {
	return &UserTypeRequirement{}
}

func (r *UserTypeRequirement) CanValidate(_ authz.Operation, resourceType authz.ResourceType) bool {
	return resourceType == authz.ResourceUser
}

func (r *UserTypeRequirement) Validate(principal *authz.Principal, operation authz.Operation, _ authz.ResourceType) authz.RequirementResult {
	return validateUserManagement(principal, operation)
}

func validateUserManagement(principal *authz.Principal, operation authz.Operation) authz.RequirementResult {
	if principal.HasRole(authz.RoleAdmin) {
		return authz.Succeed
	}
	if principal.HasRole(authz.RoleUserManager) {
		if operation == authz.OperationForceDelete {
			return authz.Failed("Only admins can force delete users.")
		}
		return authz.Succeed
	}
	return authz.Failed("You are not allowed to manage users.")
}
