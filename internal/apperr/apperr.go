// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NonFieldKey collects messages that concern the whole entity.
const NonFieldKey = "non_field_errors"

var (
	// ErrAuthenticationRequired is returned when the caller carries no valid identity.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrPermissionDenied is returned when an authenticated caller lacks a grant.
	ErrPermissionDenied = errors.New("permission denied")
)

// FieldErrors maps a field name to its messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Fields returns the field names in stable order.
func (f FieldErrors) Fields() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (f FieldErrors) String() string {
	parts := make([]string, 0, len(f))
	for _, name := range f.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(f[name], "; ")))
	}
	return strings.Join(parts, ", ")
}

// ValidationError rejects a candidate entity before anything is written.
type ValidationError struct {
	Entity string
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Fields)
}

// ConflictError reports a uniqueness or constraint violation, either found by
// the pre-write lookup or raised by the store itself.
type ConflictError struct {
	Entity     string
	Constraint string
	Fields     FieldErrors
}

func (e *ConflictError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s conflicts with existing data (%s): %s", e.Entity, e.Constraint, e.Fields)
	}
	return fmt.Sprintf("%s conflicts with existing data: %s", e.Entity, e.Fields)
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity string, id fmt.Stringer) error {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// FieldsOf extracts the field map from a validation or conflict error.
func FieldsOf(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Fields, true
	}
	return nil, false
}
