// Package querystring parses the external collection query language into
// query specs. The language is a small OData-like dialect:
//
//	$filter=duration gt 4 and note ne "standup"&$orderby=date desc&$top=10&$skip=20
//
// Filters are conjunctions of field/operator/literal triples; literals are
// double-quoted strings, numbers or booleans.
package querystring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"worktrack/tracker-api/internal/domain/query"
)

type filterExpr struct {
	First *condition   `parser:"@@"`
	Rest  []*condition `parser:"( 'and' @@ )*"`
}

type condition struct {
	Field string   `parser:"@Ident"`
	Op    string   `parser:"@('eq' | 'ne' | 'gt' | 'ge' | 'lt' | 'le')"`
	Value *literal `parser:"@@"`
}

type literal struct {
	Str   *string  `parser:"  @String"`
	Num   *float64 `parser:"| @(Float | Int)"`
	True  bool     `parser:"| @'true'"`
	False bool     `parser:"| @'false'"`
}

func (l *literal) value() (any, error) {
	switch {
	case l.Str != nil:
		return strconv.Unquote(*l.Str)
	case l.Num != nil:
		return *l.Num, nil
	case l.True:
		return true, nil
	case l.False:
		return false, nil
	}
	return nil, fmt.Errorf("empty literal")
}

var filterParser = participle.MustBuild[filterExpr]()

// Parser implements query.Parser.
type Parser struct{}

// NewParser constructs the parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a raw query string into a spec. fields restricts which field
// names the query may reference.
func (p *Parser) Parse(raw string, fields ...string) (*query.Spec, error) {
	allowed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allowed[f] = struct{}{}
	}

	spec := &query.Spec{}
	for _, part := range strings.Split(raw, "&") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("malformed query part %q", part)
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "$filter":
			conditions, err := parseFilter(value, allowed)
			if err != nil {
				return nil, err
			}
			spec.Conditions = append(spec.Conditions, conditions...)
		case "$orderby":
			order, err := parseOrder(value, allowed)
			if err != nil {
				return nil, err
			}
			spec.Order = append(spec.Order, order...)
		case "$top":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid $top value %q", value)
			}
			spec.Top = n
		case "$skip":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid $skip value %q", value)
			}
			spec.Skip = n
		default:
			return nil, fmt.Errorf("unknown query option %q", key)
		}
	}
	return spec, nil
}

func parseFilter(value string, allowed map[string]struct{}) ([]query.Condition, error) {
	expr, err := filterParser.ParseString("", value)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}

	all := append([]*condition{expr.First}, expr.Rest...)
	conditions := make([]query.Condition, 0, len(all))
	for _, cond := range all {
		if _, ok := allowed[cond.Field]; !ok {
			return nil, fmt.Errorf("unknown filter field %q", cond.Field)
		}
		v, err := cond.Value.value()
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, query.Condition{
			Field: cond.Field,
			Op:    query.Op(cond.Op),
			Value: v,
		})
	}
	return conditions, nil
}

func parseOrder(value string, allowed map[string]struct{}) ([]query.Order, error) {
	var order []query.Order
	for _, clause := range strings.Split(value, ",") {
		parts := strings.Fields(clause)
		if len(parts) == 0 || len(parts) > 2 {
			return nil, fmt.Errorf("malformed order clause %q", clause)
		}
		if _, ok := allowed[parts[0]]; !ok {
			return nil, fmt.Errorf("unknown sort field %q", parts[0])
		}
		desc := false
		if len(parts) == 2 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return nil, fmt.Errorf("invalid sort direction %q", parts[1])
			}
		}
		order = append(order, query.Order{Field: parts[0], Desc: desc})
	}
	return order, nil
}
