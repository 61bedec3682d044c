package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment books a patient with a doctor for a time slot.
type Appointment struct {
	Model
	PatientID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_slot" json:"patient_id"`
	DoctorID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_slot" json:"doctor_id"`
	AppointmentDate time.Time      `gorm:"not null;uniqueIndex:idx_appointments_slot;index" json:"appointment_date"`
	Status          ScheduleStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	Reason          *string        `gorm:"type:text" json:"reason,omitempty"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Doctor  *Staff   `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (Appointment) TableName() string {
	return "appointments"
}
