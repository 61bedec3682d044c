package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice bills a patient.
type Invoice struct {
	Model
	PatientID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	IssueDate        Date            `gorm:"not null;index" json:"issue_date"`
	DueDate          Date            `gorm:"not null;index;check:chk_invoices_due_date,due_date >= issue_date" json:"due_date"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null;check:chk_invoices_total_amount,total_amount >= 0" json:"total_amount"`
	Paid             bool            `gorm:"not null;default:false;index" json:"paid"`
	InsuranceClaimed bool            `gorm:"not null;default:false" json:"insurance_claimed"`
	Details          *string         `gorm:"type:text" json:"details,omitempty"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`

	IsOverdue bool `gorm:"-" json:"is_overdue"`
}

// TableName overrides the table name
func (Invoice) TableName() string {
	return "invoices"
}

// Overdue reports whether the invoice is unpaid past its due date.
func (i *Invoice) Overdue(today Date) bool {
	return !i.Paid && !i.DueDate.IsZero() && i.DueDate.Before(today)
}

// Derive fills computed fields.
func (i *Invoice) Derive(now time.Time) {
	i.IsOverdue = i.Overdue(DateOf(now))
}
