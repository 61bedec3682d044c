package query

import (
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Apply adds joins, filters, search and ordering to db. Pagination is left
// to the caller so the same query can be counted first.
func Apply(db *gorm.DB, spec Spec, p Params, filters ...Filter) *gorm.DB {
	for _, j := range spec.Joins {
		db = db.Joins(j)
	}
	for _, f := range filters {
		db = db.Where(Expression(f))
	}
	if p.Search != "" && len(spec.SearchFields) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(p.Search)) + "%"
		exprs := make([]clause.Expression, 0, len(spec.SearchFields))
		for _, field := range spec.SearchFields {
			exprs = append(exprs, clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{clause.Column{Name: field}, pattern}})
		}
		db = db.Where(clause.Or(exprs...))
	}
	return db
}

// Order applies the resolved ordering plus the primary key as a tiebreaker.
func Order(db *gorm.DB, spec Spec, p Params, pk string) *gorm.DB {
	if column, desc, ok := spec.Ordering(p.OrderBy); ok {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	}
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: pk}})
}

// Paginate limits db to page.
func Paginate(db *gorm.DB, page int) *gorm.DB {
	return db.Offset(Offset(page)).Limit(PageSize)
}

// Expression converts a Filter into a gorm clause.
func Expression(f Filter) clause.Expression {
	col := clause.Column{Name: f.Column}
	v := f.Value
	if c, ok := v.(Column); ok {
		v = clause.Column{Name: string(c)}
	}
	switch f.Op {
	case OpLt:
		return clause.Lt{Column: col, Value: v}
	case OpLte:
		return clause.Lte{Column: col, Value: v}
	case OpGte:
		return clause.Gte{Column: col, Value: v}
	case OpIn:
		return clause.IN{Column: col, Values: toSlice(v)}
	case OpNull:
		return clause.Eq{Column: col, Value: nil}
	case OpNotNull:
		return clause.Neq{Column: col, Value: nil}
	default:
		return clause.Eq{Column: col, Value: v}
	}
}

func toSlice(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
