package user

import (
	"context"
	"regexp"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/identity"
	"worktrack/tracker-api/internal/domain/validation"
)

const maxNameLength = 100

var emailPattern = regexp.MustCompile(`^.+@.+$`)

// assignableRoles are the roles an upsert may grant.
var assignableRoles = map[string]struct{}{
	authz.RoleAdmin:       {},
	authz.RoleUserManager: {},
	authz.RoleUser:        {},
}

// UpsertValidator validates user create/update commands, including email
// uniqueness against the repository.
type UpsertValidator struct {
	users Repository
}

func NewUpsertValidator(users Repository) *UpsertValidator {
	return &UpsertValidator{users: users}
}

func (v *UpsertValidator) CanValidate(obj any) bool {
	_, ok := obj.(*UpsertCommand)
	return ok
}

func (v *UpsertValidator) Validate(ctx context.Context, obj any) error {
	command := obj.(*UpsertCommand)

	if command.ID == "" {
		return validation.NewError("Invalid user ID.")
	}
	if command.Name == "" {
		return validation.NewError("Name can not be empty.")
	}
	if len(command.Name) > maxNameLength {
		return validation.Errorf("Name must be shorter than %d characters.", maxNameLength)
	}
	if !emailPattern.MatchString(command.Email) {
		return validation.NewError("Invalid email address.")
	}

	if command.Roles != nil {
		if len(command.Roles) == 0 {
			return validation.NewError("User must have at least one role.")
		}
		for _, role := range command.Roles {
			if _, ok := assignableRoles[role]; !ok {
				return validation.Errorf("Invalid role: %s.", role)
			}
		}
	}

	unique, err := v.users.IsEmailUnique(ctx, command.ID, command.Email)
	if err != nil {
		return err
	}
	if !unique {
		return validation.NewError("Email has been already used.")
	}
	return nil
}

// DeleteValidator validates user delete commands. Beyond field checks it
// enforces two business rules: the caller can not delete themselves, and the
// last remaining admin or user manager can not be removed.
type DeleteValidator struct {
	users    Repository
	identity identity.Manager
	resolver CurrentUserResolver
}

func NewDeleteValidator(users Repository, identity identity.Manager, resolver CurrentUserResolver) *DeleteValidator {
	return &DeleteValidator{users: users, identity: identity, resolver: resolver}
}

func (v *DeleteValidator) CanValidate(obj any) bool {
	_, ok := obj.(*DeleteCommand)
	return ok
}

func (v *DeleteValidator) Validate(ctx context.Context, obj any) error {
	command := obj.(*DeleteCommand)

	if command.UserID == "" {
		return validation.NewError("Invalid user ID.")
	}

	target, err := v.users.FindByID(ctx, command.UserID)
	if err != nil {
		return err
	}
	if target == nil {
		// Missing users pass, the delete itself is a no-op.
		return nil
	}

	currentUser, err := v.resolver.ResolveUser(ctx)
	if err != nil {
		return err
	}
	if currentUser != nil && currentUser.ID == target.ID {
		return validation.NewError("Can not delete yourself.")
	}

	if target.TimeEntryCount > 0 && !command.Force {
		return validation.NewError("There are time entries associated with this user, try force delete.")
	}

	roles, err := v.identity.GetRoles(ctx, target.ID)
	if err != nil {
		return err
	}
	privileged := false
	for _, role := range roles {
		if role == authz.RoleAdmin || role == authz.RoleUserManager {
			privileged = true
			break
		}
	}
	if privileged {
		counts, err := v.identity.CountUsersInRoles(ctx, authz.RoleAdmin, authz.RoleUserManager)
		if err != nil {
			return err
		}
		if counts[authz.RoleAdmin]+counts[authz.RoleUserManager] <= 1 {
			return validation.NewError("This user is the only admin/user manager in system.")
		}
	}
	return nil
}

// UpdateSettingsValidator validates profile settings updates.
type UpdateSettingsValidator struct{}

func NewUpdateSettingsValidator() *UpdateSettingsValidator {
	return &UpdateSettingsValidator{}
}

func (v *UpdateSettingsValidator) CanValidate(obj any) bool {
	_, ok := obj.(*UpdateSettingsCommand)
	return ok
}

func (v *UpdateSettingsValidator) Validate(_ context.Context, obj any) error {
	command := obj.(*UpdateSettingsCommand)

	if command.Name == "" {
		return validation.NewError("Name can not be empty.")
	}
	if len(command.Name) > maxNameLength {
		return validation.Errorf("Name must be shorter than %d characters.", maxNameLength)
	}
	if command.PreferredWorkingHourPerDay <= 0 {
		return validation.NewError("Preferred working hours must be greater than 0.")
	}
	if command.PreferredWorkingHourPerDay > 24 {
		return validation.NewError("Preferred working hours can not be greater than 24 hours.")
	}
	return nil
}
