package account

import (
	"context"
	"regexp"
	"unicode"

	"worktrack/tracker-api/internal/domain/validation"
)

const (
	minPasswordLength = 6
	maxNameLength     = 100
)

var emailPattern = regexp.MustCompile(`^.+@.+$`)

// passwordStrengthError is shared by registration and password change. The
// rule is deliberately modest: a letter, a non-letter and six characters.
const passwordStrengthError = "Password must be at least 6 characters long and contain both letters and non-letter characters."

func isStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	hasLetter, hasOther := false, false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		} else {
			hasOther = true
		}
	}
	return hasLetter && hasOther
}

// RegisterValidator validates self-registration commands.
type RegisterValidator struct{}

func NewRegisterValidator() *RegisterValidator {
	return &RegisterValidator{}
}

func (v *RegisterValidator) CanValidate(obj any) bool {
	_, ok := obj.(*RegisterCommand)
	return ok
}

func (v *RegisterValidator) Validate(_ context.Context, obj any) error {
	command := obj.(*RegisterCommand)

	if !emailPattern.MatchString(command.Email) {
		return validation.NewError("Invalid email address.")
	}
	if command.Name == "" {
		return validation.NewError("Name can not be empty.")
	}
	if len(command.Name) > maxNameLength {
		return validation.Errorf("Name must be shorter than %d characters.", maxNameLength)
	}
	if !isStrongPassword(command.Password) {
		return validation.NewError(passwordStrengthError)
	}
	if command.Password != command.ConfirmPassword {
		return validation.NewError("Passwords do not match.")
	}
	return nil
}

// ChangePasswordValidator validates password rotation commands.
type ChangePasswordValidator struct{}

func NewChangePasswordValidator() *ChangePasswordValidator {
	return &ChangePasswordValidator{}
}

func (v *ChangePasswordValidator) CanValidate(obj any) bool {
	_, ok := obj.(*ChangePasswordCommand)
	return ok
}

func (v *ChangePasswordValidator) Validate(_ context.Context, obj any) error {
	command := obj.(*ChangePasswordCommand)

	if command.CurrentPassword == "" {
		return validation.NewError("Current password can not be empty.")
	}
	if !isStrongPassword(command.NewPassword) {
		return validation.NewError(passwordStrengthError)
	}
	if command.NewPassword != command.ConfirmNewPassword {
		return validation.NewError("Passwords do not match.")
	}
	return nil
}
