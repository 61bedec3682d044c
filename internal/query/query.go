// Package query turns list parameters into filtered, ordered and paginated
// gorm queries.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/otcheredev/remedium-hms/internal/apperr"
)

// PageSize is the number of rows per list page.
const PageSize = 10

// Params are the caller-supplied list options.
type Params struct {
	Search  string
	OrderBy string
	Page    int
}

// ParseParams reads q, order_by and page from a query string.
func ParseParams(v url.Values) (Params, error) {
	p := Params{
		Search:  strings.TrimSpace(v.Get("q")),
		OrderBy: strings.TrimSpace(v.Get("order_by")),
		Page:    1,
	}
	if raw := strings.TrimSpace(v.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields := apperr.FieldErrors{}
			fields.Add("page", "Invalid page.")
			return Params{}, &apperr.ValidationError{Entity: "page", Fields: fields}
		}
		p.Page = n
	}
	return p, nil
}

// Spec describes how one entity is searched and ordered.
type Spec struct {
	// Joins are raw join clauses needed by search fields on related tables.
	Joins []string
	// SearchFields are columns matched case-insensitively by Params.Search.
	SearchFields []string
	// OrderFields maps public ordering names to columns.
	OrderFields map[string]string
	// DefaultOrder applies when OrderBy is empty or unknown. A leading "-"
	// sorts descending.
	DefaultOrder string
}

// Ordering resolves an order_by value to a column and direction, falling
// back to DefaultOrder.
func (s Spec) Ordering(orderBy string) (column string, desc bool, ok bool) {
	if column, desc, ok = s.resolve(orderBy); ok {
		return column, desc, true
	}
	return s.resolve(s.DefaultOrder)
}

func (s Spec) resolve(orderBy string) (string, bool, bool) {
	name, desc := strings.CutPrefix(orderBy, "-")
	if name == "" {
		return "", false, false
	}
	column, ok := s.OrderFields[name]
	return column, desc, ok
}

// Page is one slice of a list result.
type Page[T any] struct {
	Items    []T   `json:"results"`
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	NumPages int   `json:"num_pages"`
}

// NewPage computes page bookkeeping for count total rows.
func NewPage[T any](items []T, count int64, page int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Count: count, Page: page, NumPages: NumPages(count)}
}

// HasNext reports whether a later page exists.
func (p *Page[T]) HasNext() bool { return p.Page < p.NumPages }

// NumPages is the number of pages needed for count rows. An empty result
// still has one page.
func NumPages(count int64) int {
	if count <= 0 {
		return 1
	}
	return int((count + PageSize - 1) / PageSize)
}

// Offset is the first row index of page.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}
