package timeentry

import (
	"context"

	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/domain/validation"
)

const maxNoteLength = 300

// UpsertValidator validates UpsertCommand fields and checks that the owner
// references an existing user.
type UpsertValidator struct {
	users user.Repository
}

// NewUpsertValidator constructs the validator.
func NewUpsertValidator(users user.Repository) *UpsertValidator {
	return &UpsertValidator{users: users}
}

// CanValidate reports whether obj is an upsert command.
func (v *UpsertValidator) CanValidate(obj any) bool {
	_, ok := obj.(*UpsertCommand)
	return ok
}

// Validate checks the command, returning the first broken rule.
func (v *UpsertValidator) Validate(ctx context.Context, obj any) error {
	command := obj.(*UpsertCommand)

	if command.ID == "" {
		return validation.NewError("Invalid time entry ID.")
	}
	if command.Note == "" {
		return validation.NewError("Note can not be empty.")
	}
	if len(command.Note) > maxNoteLength {
		return validation.NewError("Note must be shorter than 300 characters.")
	}
	if command.Duration > 24 {
		return validation.NewError("Duration can not be greater than 24 hours.")
	}
	if command.Duration <= 0 {
		return validation.NewError("Duration must be greater than 0.")
	}
	if command.OwnerID == "" {
		return validation.NewError("Invalid owner ID.")
	}

	owner, err := v.users.FindByID(ctx, command.OwnerID)
	if err != nil {
		return err
	}
	if owner == nil {
		return validation.NewError("Invalid owner ID.")
	}
	return nil
}

// DeleteValidator validates DeleteCommand.
type DeleteValidator struct{}

// NewDeleteValidator constructs the validator.
func NewDeleteValidator() *DeleteValidator {
	return &DeleteValidator{}
}

// CanValidate reports whether obj is a delete command.
func (v *DeleteValidator) CanValidate(obj any) bool {
	_, ok := obj.(*DeleteCommand)
	return ok
}

// Validate checks the command.
func (v *DeleteValidator) Validate(ctx context.Context, obj any) error {
	command := obj.(*DeleteCommand)
	if command.TimeEntryID == "" {
		return validation.NewError("Invalid time entry ID.")
	}
	return nil
}
