package handlers

import (
	"errors"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/infrastructure/metrics"
)

// recordAuthz counts the authorization outcome of an operation. Denials are
// only counted when the error actually is an authorization error.
func recordAuthz(resource authz.ResourceType, operation authz.Operation, err error) {
	var denial *authz.Error
	if errors.As(err, &denial) {
		metrics.RecordAuthzDecision(string(resource), string(operation), "deny")
		return
	}
	if err == nil {
		metrics.RecordAuthzDecision(string(resource), string(operation), "allow")
	}
}
