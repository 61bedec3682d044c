package query

// Op is a comparison used by a Filter.
type Op int

const (
	OpEq Op = iota
	OpLt
	OpLte
	OpGte
	OpIn
	OpNull
	OpNotNull
)

// Filter is a single column predicate. Filters passed together are
// AND-combined.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Column names another column as a filter value.
type Column string

func Eq(column string, v any) Filter  { return Filter{Column: column, Op: OpEq, Value: v} }
func Lt(column string, v any) Filter  { return Filter{Column: column, Op: OpLt, Value: v} }
func Lte(column string, v any) Filter { return Filter{Column: column, Op: OpLte, Value: v} }
func Gte(column string, v any) Filter { return Filter{Column: column, Op: OpGte, Value: v} }
func In(column string, v any) Filter  { return Filter{Column: column, Op: OpIn, Value: v} }
func IsNull(column string) Filter     { return Filter{Column: column, Op: OpNull} }
func NotNull(column string) Filter    { return Filter{Column: column, Op: OpNotNull} }
