package models

import (
	"time"

	"github.com/google/uuid"
)

// LabTest is a laboratory order and its result.
type LabTest struct {
	Model
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	TestName      string     `gorm:"type:varchar(100);not null;index" json:"test_name"`
	RequestedDate time.Time  `gorm:"not null;index" json:"requested_date"`
	ResultDate    *time.Time `json:"result_date,omitempty"`
	Result        *string    `gorm:"type:text" json:"result,omitempty"`
	Status        LabStatus  `gorm:"type:varchar(20);not null;default:'REQUESTED';index" json:"status"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (LabTest) TableName() string {
	return "lab_tests"
}
