package models

import (
	"time"

	"github.com/google/uuid"
)

// Prescription records a drug ordered for a patient.
type Prescription struct {
	Model
	PatientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DrugName       string     `gorm:"type:varchar(100);not null;index" json:"drug_name"`
	Dosage         string     `gorm:"type:varchar(50);not null" json:"dosage"`
	Frequency      string     `gorm:"type:varchar(50);not null" json:"frequency"`
	PrescribedDate time.Time  `gorm:"not null;index" json:"prescribed_date"`
	PrescribedByID *uuid.UUID `gorm:"type:uuid;index" json:"prescribed_by,omitempty"`
	Notes          *string    `gorm:"type:text" json:"notes,omitempty"`

	Patient      *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	PrescribedBy *Staff   `gorm:"foreignKey:PrescribedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName overrides the table name
func (Prescription) TableName() string {
	return "prescriptions"
}
