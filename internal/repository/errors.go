package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/otcheredev/remedium-hms/internal/apperr"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes for integrity violations.
const (
	codeForeignKey = "23503"
	codeUnique     = "23505"
	codeCheck      = "23514"
)

// constraintFields maps named database constraints to the API field they guard.
var constraintFields = map[string]string{
	"idx_patients_unique_id":            "unique_id",
	"idx_patients_email":                "email",
	"idx_staff_staff_id":                "staff_id",
	"idx_staff_email":                   "email",
	"idx_appointments_slot":             apperr.NonFieldKey,
	"idx_surgeries_or_slot":             apperr.NonFieldKey,
	"idx_wards_name":                    "name",
	"idx_rooms_ward_number":             apperr.NonFieldKey,
	"idx_inventory_items_name":          "name",
	"idx_groups_name":                   "name",
	"idx_users_username":                "username",
	"idx_permissions_codename":          "codename",
	"chk_wards_capacity":                "capacity",
	"chk_rooms_capacity":                "capacity",
	"chk_rooms_room_number":             "room_number",
	"chk_invoices_due_date":             "due_date",
	"chk_invoices_total_amount":         "total_amount",
	"chk_inventory_items_quantity":      "quantity",
	"chk_inventory_items_reorder_level": "reorder_level",
}

// translateError turns store errors into the apperr taxonomy. Errors that
// are not integrity violations are wrapped with op and returned as is.
func translateError(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &apperr.NotFoundError{Entity: entity}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("failed to %s %s: %w", op, entity, err)
	}

	var msg string
	switch pgErr.Code {
	case codeUnique:
		msg = fmt.Sprintf("A %s with this value already exists.", entity)
	case codeForeignKey:
		msg = "Referenced record does not exist."
	case codeCheck:
		msg = "Value violates a database constraint."
	default:
		return fmt.Errorf("failed to %s %s: %w", op, entity, err)
	}

	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		field = apperr.NonFieldKey
	}
	fields := apperr.FieldErrors{}
	fields.Add(field, msg)
	return &apperr.ConflictError{Entity: entity, Constraint: pgErr.ConstraintName, Fields: fields}
}
