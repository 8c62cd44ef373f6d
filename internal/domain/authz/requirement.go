package authz

// RequirementStatus is the three way verdict a requirement renders.
type RequirementStatus int

const (
	// StatusFail denies the operation and carries error messages.
	StatusFail RequirementStatus = iota
	// StatusSkip defers the decision to the next applicable requirement.
	StatusSkip
	// StatusSucceed allows the operation and stops evaluation.
	StatusSucceed
)

// RequirementResult is the outcome of evaluating a single requirement.
// Exactly one status holds; Errors is only populated for StatusFail.
type RequirementResult struct {
	Status RequirementStatus
	Errors []string
}

// Skip defers to the next requirement in the chain.
var Skip = RequirementResult{Status: StatusSkip}

// Succeed definitively allows the operation.
var Succeed = RequirementResult{Status: StatusSucceed}

// Failed denies the operation with the given messages.
func Failed(errors ...string) RequirementResult {
	return RequirementResult{Status: StatusFail, Errors: errors}
}

// ResourceRequirement is one authorization rule evaluated against a loaded
// resource instance. Implementations must be stateless; the same instance is
// shared across concurrent requests.
type ResourceRequirement interface {
	// CanValidate reports whether this requirement has an opinion about the
	// given operation and resource. Inapplicable requirements are skipped
	// without counting toward the evaluation.
	CanValidate(operation Operation, resource any) bool

	Validate(principal *Principal, operation Operation, resource any) RequirementResult
}

// ResourceTypeRequirement is one authorization rule evaluated against a bare
// resource type tag, used before an instance exists (creates) or when no
// single instance is in scope (read-all).
type ResourceTypeRequirement interface {
	CanValidate(operation Operation, resourceType ResourceType) bool

	Validate(principal *Principal, operation Operation, resourceType ResourceType) RequirementResult
}
