// Package gormquery applies parsed query specs to GORM statements. Field
// names from the query language are mapped to whitelisted column names so a
// query string can never reference arbitrary columns.
package gormquery

import (
	"fmt"

	"gorm.io/gorm"

	"worktrack/tracker-api/internal/domain/query"
)

var sqlOps = map[query.Op]string{
	query.OpEq: "=",
	query.OpNe: "<>",
	query.OpGt: ">",
	query.OpGe: ">=",
	query.OpLt: "<",
	query.OpLe: "<=",
}

// Conditions adds the spec's filter conditions to the statement. columns
// maps query field names to column names; conditions referencing unmapped
// fields fail. A nil spec is a no-op.
func Conditions(db *gorm.DB, spec *query.Spec, columns map[string]string) (*gorm.DB, error) {
	if spec == nil {
		return db, nil
	}
	for _, cond := range spec.Conditions {
		column, ok := columns[cond.Field]
		if !ok {
			return nil, fmt.Errorf("unknown query field %q", cond.Field)
		}
		op, ok := sqlOps[cond.Op]
		if !ok {
			return nil, fmt.Errorf("unknown query operator %q", cond.Op)
		}
		db = db.Where(fmt.Sprintf("%s %s ?", column, op), cond.Value)
	}
	return db, nil
}

// Page adds the spec's ordering, offset and limit to the statement.
// defaultOrder is used when the spec carries no sort keys; limit is the page
// cap applied after the spec's own top.
func Page(db *gorm.DB, spec *query.Spec, columns map[string]string, defaultOrder string, limit int) (*gorm.DB, error) {
	ordered := false
	if spec != nil {
		for _, order := range spec.Order {
			column, ok := columns[order.Field]
			if !ok {
				return nil, fmt.Errorf("unknown sort field %q", order.Field)
			}
			direction := "ASC"
			if order.Desc {
				direction = "DESC"
			}
			db = db.Order(column + " " + direction)
			ordered = true
		}
		if spec.Skip > 0 {
			db = db.Offset(spec.Skip)
		}
		if spec.Top > 0 && (limit <= 0 || spec.Top < limit) {
			limit = spec.Top
		}
	}

	if !ordered && defaultOrder != "" {
		db = db.Order(defaultOrder)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	return db, nil
}
