package query

import (
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type person struct {
	ID        int
	FirstName string
	LastName  string
	Paid      bool
}

var personSpec = Spec{
	SearchFields: []string{"first_name", "last_name"},
	OrderFields:  map[string]string{"last_name": "last_name", "first_name": "first_name"},
	DefaultOrder: "last_name",
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams(url.Values{"q": {"  smith "}, "order_by": {"-last_name"}, "page": {"3"}})
	require.NoError(t, err)
	assert.Equal(t, Params{Search: "smith", OrderBy: "-last_name", Page: 3}, p)

	p, err = ParseParams(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)

	for _, bad := range []string{"0", "-1", "two"} {
		_, err = ParseParams(url.Values{"page": {bad}})
		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr, "page %q", bad)
	}
}

func TestSpecOrdering(t *testing.T) {
	tests := []struct {
		orderBy string
		column  string
		desc    bool
	}{
		{"", "last_name", false},
		{"first_name", "first_name", false},
		{"-first_name", "first_name", true},
		{"password", "last_name", false},
		{"-", "last_name", false},
	}
	for _, tt := range tests {
		column, desc, ok := personSpec.Ordering(tt.orderBy)
		require.True(t, ok)
		assert.Equal(t, tt.column, column, tt.orderBy)
		assert.Equal(t, tt.desc, desc, tt.orderBy)
	}

	_, _, ok := Spec{}.Ordering("anything")
	assert.False(t, ok)
}

func TestPageBookkeeping(t *testing.T) {
	assert.Equal(t, 1, NumPages(0))
	assert.Equal(t, 1, NumPages(10))
	assert.Equal(t, 2, NumPages(11))
	assert.Equal(t, 0, Offset(1))
	assert.Equal(t, 20, Offset(3))

	page := NewPage[person](nil, 11, 1)
	assert.NotNil(t, page.Items)
	assert.True(t, page.HasNext())
}

func TestApplySearchAndFilters(t *testing.T) {
	db := dryRunDB(t)

	var out []person
	stmt := Apply(db.Model(&person{}), personSpec, Params{Search: "50%_Off"}, Eq("paid", false)).
		Find(&out).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `"paid" = $1`)
	assert.Contains(t, sql, `LOWER("first_name") LIKE $2`)
	assert.Contains(t, sql, `LOWER("last_name") LIKE $3`)
	assert.Contains(t, sql, " OR ")
	assert.Equal(t, []any{false, `%50\%\_off%`, `%50\%\_off%`}, stmt.Vars)
}

func TestApplyWithoutSearchSkipsLike(t *testing.T) {
	db := dryRunDB(t)

	var out []person
	sql := Apply(db.Model(&person{}), personSpec, Params{}).Find(&out).Statement.SQL.String()
	assert.NotContains(t, sql, "LIKE")
}

func TestOrderAndPaginate(t *testing.T) {
	db := dryRunDB(t)

	var out []person
	q := Order(db.Model(&person{}), personSpec, Params{OrderBy: "-first_name"}, "id")
	sql := Paginate(q, 2).Find(&out).Statement.SQL.String()

	assert.Contains(t, sql, `ORDER BY "first_name" DESC,"id"`)
	assert.Regexp(t, `LIMIT (10|\$\d+)`, sql)
	assert.Regexp(t, `OFFSET (10|\$\d+)`, sql)
}

func TestExpression(t *testing.T) {
	db := dryRunDB(t)

	var out []person
	sql := db.Model(&person{}).
		Where(Expression(IsNull("discharge_date"))).
		Where(Expression(NotNull("admission_date"))).
		Where(Expression(Lte("quantity", Column("reorder_level")))).
		Where(Expression(In("role", []string{"DOCTOR", "NURSE"}))).
		Find(&out).Statement.SQL.String()

	assert.Contains(t, sql, `"discharge_date" IS NULL`)
	assert.Contains(t, sql, `"admission_date" IS NOT NULL`)
	assert.Contains(t, sql, `"quantity" <= "reorder_level"`)
	assert.Contains(t, sql, `"role" IN ($1,$2)`)
}
