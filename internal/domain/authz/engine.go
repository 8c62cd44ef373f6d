package authz

import "strings"

// Error is returned when an authorization check denies the operation.
// It maps to an access-denied outcome at the HTTP boundary and is never
// retried.
type Error struct {
	Reasons []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Reasons) == 0 {
		return "authorization denied"
	}
	return strings.Join(e.Reasons, "\n")
}

// NewError creates an authorization error with the given reasons.
func NewError(reasons ...string) *Error {
	return &Error{Reasons: reasons}
}

// Engine evaluates ordered requirement chains. The requirement lists are
// configured once at startup and treated as read-only afterwards.
type Engine struct {
	resourceRequirements []ResourceRequirement
	typeRequirements     []ResourceTypeRequirement
}

// NewEngine constructs an engine over the given requirement chains.
// Iteration order equals registration order and is significant: the first
// Fail or Succeed verdict wins.
func NewEngine(resourceRequirements []ResourceRequirement, typeRequirements []ResourceTypeRequirement) *Engine {
	return &Engine{
		resourceRequirements: resourceRequirements,
		typeRequirements:     typeRequirements,
	}
}

// AuthorizeResource evaluates the resource requirement chain against a loaded
// instance. Requirements whose CanValidate returns false are ignored. A Fail
// verdict denies immediately with its messages, a Succeed verdict allows
// immediately. If every applicable requirement skipped, the operation is
// denied. If no requirement was applicable at all the call succeeds: rules
// that do not know the resource type do not get to veto it.
func (e *Engine) AuthorizeResource(principal *Principal, operation Operation, resource any) error {
	skipped := false
	for _, requirement := range e.resourceRequirements {
		if !requirement.CanValidate(operation, resource) {
			continue
		}

		result := requirement.Validate(principal, operation, resource)
		switch result.Status {
		case StatusFail:
			return NewError(result.Errors...)
		case StatusSucceed:
			return nil
		}

		skipped = true
	}

	if skipped {
		return NewError()
	}
	return nil
}

// AuthorizeResourceType evaluates the resource-type requirement chain against
// a bare type tag, using the same algorithm as AuthorizeResource.
func (e *Engine) AuthorizeResourceType(principal *Principal, operation Operation, resourceType ResourceType) error {
	skipped := false
	for _, requirement := range e.typeRequirements {
		if !requirement.CanValidate(operation, resourceType) {
			continue
		}

		result := requirement.Validate(principal, operation, resourceType)
		switch result.Status {
		case StatusFail:
			return NewError(result.Errors...)
		case StatusSucceed:
			return nil
		}

		skipped = true
	}

	if skipped {
		return NewError()
	}
	return nil
}
