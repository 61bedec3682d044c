package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dependent is a table whose rows reference an owner being deleted.
type dependent struct {
	table  string
	column string
	// weak references are nulled; strong ones are deleted with the owner.
	weak bool
	// through, when set, matches rows whose column points at any row of an
	// intermediate table owned by the deleted id.
	through *link
}

type link struct {
	table  string
	column string
}

// ownership lists, per owner table, what happens to referencing rows on
// delete. Entries run in order before the owner row itself is removed.
var ownership = map[string][]dependent{
	"patients": {
		{table: "appointments", column: "patient_id"},
		{table: "invoices", column: "patient_id"},
		{table: "lab_tests", column: "patient_id"},
		{table: "prescriptions", column: "patient_id"},
		{table: "surgeries", column: "patient_id"},
		{table: "patient_care", column: "patient_id"},
	},
	"staff": {
		{table: "appointments", column: "doctor_id"},
		{table: "surgeries", column: "surgeon_id"},
		{table: "prescriptions", column: "prescribed_by_id", weak: true},
		{table: "patient_care", column: "recorded_by_id", weak: true},
		{table: "users", column: "staff_id", weak: true},
	},
	"wards": {
		{table: "patients", column: "ward_id", weak: true},
		{table: "patients", column: "room_id", weak: true, through: &link{table: "rooms", column: "ward_id"}},
		{table: "rooms", column: "ward_id"},
	},
	"rooms": {
		{table: "patients", column: "room_id", weak: true},
	},
}

func (d dependent) release(tx *gorm.DB, owner uuid.UUID) error {
	target := clause.Table{Name: d.table}
	col := clause.Column{Name: d.column}

	match, vars := "? = ?", []any{col, owner}
	if d.through != nil {
		match = "? IN (SELECT ? FROM ? WHERE ? = ?)"
		vars = []any{col, clause.Column{Name: "id"}, clause.Table{Name: d.through.table}, clause.Column{Name: d.through.column}, owner}
	}

	if d.weak {
		return tx.Exec("UPDATE ? SET ? = NULL WHERE "+match, append([]any{target, col}, vars...)...).Error
	}
	return tx.Exec("DELETE FROM ? WHERE "+match, append([]any{target}, vars...)...).Error
}
