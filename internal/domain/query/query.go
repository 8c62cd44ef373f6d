// Package query defines the parsed representation of external filter, sort
// and paging strings applied to collection reads.
package query

import "strings"

// Op is a comparison operator in a filter condition.
type Op string

const (
	OpEq Op = "eq"
	OpNe Op = "ne"
	OpGt Op = "gt"
	OpGe Op = "ge"
	OpLt Op = "lt"
	OpLe Op = "le"
)

// Condition compares one field against a literal value. Value is a string,
// float64 or bool depending on the literal the caller wrote.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Order is one sort key.
type Order struct {
	Field string
	Desc  bool
}

// Spec is the parsed form of an external query string. Zero Top means no
// client supplied limit.
type Spec struct {
	Conditions []Condition
	Order      []Order
	Top        int
	Skip       int
}

// ParseOrderBy turns "date desc, note" style order clauses into sort keys.
// Unknown direction words default to ascending.
func ParseOrderBy(raw string) []Order {
	var order []Order
	for _, clause := range strings.Split(raw, ",") {
		parts := strings.Fields(clause)
		if len(parts) == 0 {
			continue
		}
		order = append(order, Order{
			Field: parts[0],
			Desc:  len(parts) > 1 && strings.EqualFold(parts[1], "desc"),
		})
	}
	return order
}

// Parser turns a raw query string into a Spec. Fields restricts which field
// names the query may reference; anything else is a parse error. Invalid
// syntax must surface as an error so callers can reject the request as a
// validation failure.
type Parser interface {
	Parse(raw string, fields ...string) (*Spec, error)
}
