// Package validation holds the per-entity field and cross-field rules run
// before every write.
package validation

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/models"
)

// Lookup answers existence queries against persisted rows.
type Lookup interface {
	// Exists reports whether a row of table matches every condition,
	// ignoring the row whose id equals exclude.
	Exists(ctx context.Context, table string, conds map[string]any, exclude uuid.UUID) (bool, error)
}

// Context is shared by every rule of one validation pass.
type Context struct {
	Ctx    context.Context
	Now    time.Time
	Lookup Lookup
	// Original is the persisted version of the candidate on update, nil on create.
	Original any
}

// Today is the calendar day of Now in UTC.
func (c *Context) Today() models.Date {
	return models.DateOf(c.Now.UTC())
}

// Errors accumulates field messages for one candidate.
type Errors struct {
	fields    apperr.FieldErrors
	conflicts map[string]int
}

// NewErrors returns an empty accumulator.
func NewErrors() *Errors {
	return &Errors{fields: apperr.FieldErrors{}, conflicts: map[string]int{}}
}

// Add records a message against field.
func (e *Errors) Add(field, msg string) {
	e.fields.Add(field, msg)
}

// AddConflict records a uniqueness failure against field.
func (e *Errors) AddConflict(field, msg string) {
	e.fields.Add(field, msg)
	e.conflicts[field]++
}

// Has reports whether field already carries a message.
func (e *Errors) Has(field string) bool {
	return len(e.fields[field]) > 0
}

// Empty reports whether no rule failed.
func (e *Errors) Empty() bool {
	return len(e.fields) == 0
}

// Fields returns the accumulated messages.
func (e *Errors) Fields() apperr.FieldErrors {
	return e.fields
}

// Err converts the accumulated messages into a ValidationError, or a
// ConflictError when uniqueness was the only problem. It returns nil when
// the candidate is valid.
func (e *Errors) Err(entity string) error {
	if e.Empty() {
		return nil
	}
	if len(e.conflicts) > 0 && e.onlyConflicts() {
		return &apperr.ConflictError{Entity: entity, Fields: e.fields}
	}
	return &apperr.ValidationError{Entity: entity, Fields: e.fields}
}

func (e *Errors) onlyConflicts() bool {
	for field, msgs := range e.fields {
		if len(msgs) != e.conflicts[field] {
			return false
		}
	}
	return true
}

// Rule checks one aspect of a candidate. A returned error means the check
// itself could not run; rule failures go into errs.
type Rule[T any] func(vc *Context, e *T, errs *Errors) error

// Validate runs every rule against e.
func Validate[T any](vc *Context, e *T, rules []Rule[T]) (*Errors, error) {
	errs := NewErrors()
	for _, rule := range rules {
		if err := rule(vc, e, errs); err != nil {
			return nil, err
		}
	}
	return errs, nil
}

func requireText(errs *Errors, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "This field is required.")
		return
	}
	maxLength(errs, field, value, max)
}

func maxLength(errs *Errors, field, value string, max int) {
	if max > 0 && utf8.RuneCountInString(value) > max {
		errs.Add(field, fmt.Sprintf("Ensure this value has at most %d characters.", max))
	}
}

func optionalMaxLength(errs *Errors, field string, value *string, max int) {
	if value != nil {
		maxLength(errs, field, *value, max)
	}
}

func validEmail(errs *Errors, field string, email *string) {
	if email == nil {
		return
	}
	addr, err := mail.ParseAddress(*email)
	if err != nil || addr.Address != *email || !strings.Contains(addr.Address, ".") {
		errs.Add(field, "Enter a valid email address.")
	}
}

// unique records a conflict on field when another row already holds the value.
func unique(vc *Context, errs *Errors, table, field string, conds map[string]any, self uuid.UUID, msg string) error {
	taken, err := vc.Lookup.Exists(vc.Ctx, table, conds, self)
	if err != nil {
		return fmt.Errorf("failed to check %s uniqueness: %w", table, err)
	}
	if taken {
		errs.AddConflict(field, msg)
	}
	return nil
}

// reference records an error on field when id is unset or names no row of table.
func reference(vc *Context, errs *Errors, table, field string, id uuid.UUID, label string) error {
	if id == uuid.Nil {
		errs.Add(field, "This field is required.")
		return nil
	}
	return optionalReference(vc, errs, table, field, &id, label)
}

func optionalReference(vc *Context, errs *Errors, table, field string, id *uuid.UUID, label string) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	found, err := vc.Lookup.Exists(vc.Ctx, table, map[string]any{"id": *id}, uuid.Nil)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", label, err)
	}
	if !found {
		errs.Add(field, fmt.Sprintf("Select a valid %s.", label))
	}
	return nil
}

func inRange(errs *Errors, field string, v *float64, r models.Range, unit string) {
	if v != nil && !r.Contains(*v) {
		errs.Add(field, fmt.Sprintf("Must be between %g and %g%s.", r.Min, r.Max, unit))
	}
}

func intInRange(errs *Errors, field string, v *int, r models.Range, unit string) {
	if v == nil {
		return
	}
	f := float64(*v)
	inRange(errs, field, &f, r, unit)
}
