// Package authz implements role based authorization decisions over
// domain resources and resource types.
package authz

// Operation describes the caller's intent against a resource.
type Operation string

const (
	OperationRead        Operation = "read"
	OperationReadAll     Operation = "read_all"
	OperationCreate      Operation = "create"
	OperationUpdate      Operation = "update"
	OperationUpsert      Operation = "upsert"
	OperationDelete      Operation = "delete"
	OperationForceDelete Operation = "force_delete"
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return string(o)
}

// ResourceType identifies a resource kind for checks performed before a
// concrete instance is loaded or created.
type ResourceType string

const (
	ResourceTimeEntry ResourceType = "time_entry"
	ResourceUser      ResourceType = "user"
)
