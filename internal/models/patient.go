package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a person registered with the hospital.
type Patient struct {
	Model
	UniqueID              string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_patients_unique_id" json:"unique_id"`
	FirstName             string     `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName              string     `gorm:"type:varchar(50);not null;index" json:"last_name"`
	DateOfBirth           Date       `gorm:"not null" json:"date_of_birth"`
	Gender                Gender     `gorm:"type:varchar(10);not null" json:"gender"`
	Address               string     `gorm:"type:text" json:"address"`
	Phone                 string     `gorm:"type:varchar(20);not null" json:"phone"`
	Email                 *string    `gorm:"type:varchar(254);uniqueIndex:idx_patients_email" json:"email,omitempty"`
	InsuranceProvider     *string    `gorm:"type:varchar(100)" json:"insurance_provider,omitempty"`
	EmergencyContactName  *string    `gorm:"type:varchar(100)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`
	MedicalHistory        *string    `gorm:"type:text" json:"medical_history,omitempty"`
	AdmissionDate         *time.Time `gorm:"index" json:"admission_date,omitempty"`
	DischargeDate         *time.Time `json:"discharge_date,omitempty"`
	WardID                *uuid.UUID `gorm:"type:uuid;index" json:"ward_id,omitempty"`
	RoomID                *uuid.UUID `gorm:"type:uuid;index" json:"room_id,omitempty"`

	Ward *Ward `gorm:"foreignKey:WardID;constraint:OnDelete:SET NULL" json:"-"`
	Room *Room `gorm:"foreignKey:RoomID;constraint:OnDelete:SET NULL" json:"-"`

	IsAdmitted bool `gorm:"-" json:"is_admitted"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// Admitted reports whether the patient is currently in the hospital.
func (p *Patient) Admitted() bool {
	return p.AdmissionDate != nil && p.DischargeDate == nil
}

// Derive fills computed fields.
func (p *Patient) Derive(time.Time) {
	p.IsAdmitted = p.Admitted()
}
