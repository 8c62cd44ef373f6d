// Package validation dispatches command and query objects to type scoped
// validators.
package validation

import (
	"context"
	"fmt"
)

// Error is a domain validation failure carrying one human-readable message.
// It maps to a bad-request outcome at the HTTP boundary and is never retried.
type Error struct {
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewError creates a validation error with the given message.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// Errorf creates a validation error with a formatted message.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Validator is one validation rule scoped to a single command or query type.
// Validators may consult repositories and are invoked sequentially by the
// dispatcher; they must not hold per-call mutable state.
type Validator interface {
	// CanValidate reports whether this validator handles the given object.
	CanValidate(obj any) bool

	// Validate checks the object and returns a *Error on the first rule the
	// object breaks. Collaborator failures (repository errors) propagate
	// unmodified.
	Validate(ctx context.Context, obj any) error
}

// Dispatcher runs every registered validator whose CanValidate matches, in
// registration order. The list is configured once at startup.
type Dispatcher struct {
	validators []Validator
}

// NewDispatcher constructs a dispatcher over the given validators.
func NewDispatcher(validators ...Validator) *Dispatcher {
	return &Dispatcher{validators: validators}
}

// Validate runs all matching validators sequentially. The first failure is
// returned and aborts the remaining validators in this dispatch, so callers
// always see the first validation error encountered.
func (d *Dispatcher) Validate(ctx context.Context, obj any) error {
	for _, validator := range d.validators {
		if !validator.CanValidate(obj) {
			continue
		}
		if err := validator.Validate(ctx, obj); err != nil {
			return err
		}
	}
	return nil
}
