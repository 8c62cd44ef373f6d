// Package requirements holds the concrete authorization requirements wired
// into the engine. Each requirement covers one resource kind at either the
// instance or the type level.
package requirements

import (
	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/timeentry"
)

// TimeEntryRequirement authorizes operations against a concrete time entry.
// Admins may do anything, plain users may only touch their own entries, and
// principals without the USER role are rejected outright.
type TimeEntryRequirement struct{}

func NewTimeEntryRequirement() *TimeEntryRequirement {
	return &TimeEntryRequirement{}
}

func (r *TimeEntryRequirement) CanValidate(_ authz.Operation, resource any) bool {
	_, ok := resource.(*timeentry.TimeEntry)
	return ok
}

func (r *TimeEntryRequirement) Validate(principal *authz.Principal, _ authz.Operation, resource any) authz.RequirementResult {
	entry := resource.(*timeentry.TimeEntry)

	if principal.HasRole(authz.RoleAdmin) {
		return authz.Succeed
	}
	if !principal.HasRole(authz.RoleUser) {
		return authz.Failed("You are not allowed to manage time entries.")
	}
	if entry.OwnerID == principal.ID {
		return authz.Succeed
	}
	return authz.Skip
}

// TimeEntryTypeRequirement authorizes operations against the time entry
// collection. ReadAll is reserved for admins; everything else is open to any
// principal holding the USER role.
type TimeEntryTypeRequirement struct{}

func NewTimeEntryTypeRequirement() *TimeEntryTypeRequirement {
	return &TimeEntryTypeRequirement{}
}

func (r *TimeEntryTypeRequirement) CanValidate(_ authz.Operation, resourceType authz.ResourceType) bool {
	return resourceType == authz.ResourceTimeEntry
}

func (r *TimeEntryTypeRequirement) Validate(principal *authz.Principal, operation authz.Operation, _ authz.ResourceType) authz.RequirementResult {
	if principal.HasRole(authz.RoleAdmin) {
		return authz.Succeed
	}
	if !principal.HasRole(authz.RoleUser) {
		return authz.Failed("You are not allowed to manage time entries.")
	}
	if operation == authz.OperationReadAll {
		return authz.Failed("You are not allowed to read time entries of other users.")
	}
	return authz.Succeed
}
