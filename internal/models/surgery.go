package models

import (
	"time"

	"github.com/google/uuid"
)

// Surgery is an operation booked in an operating room.
type Surgery struct {
	Model
	PatientID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	SurgeonID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"surgeon_id"`
	ScheduledDate time.Time      `gorm:"not null;uniqueIndex:idx_surgeries_or_slot" json:"scheduled_date"`
	OperatingRoom string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_surgeries_or_slot" json:"operating_room"`
	Procedure     string         `gorm:"type:varchar(100);not null" json:"procedure"`
	Status        ScheduleStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Surgeon *Staff   `gorm:"foreignKey:SurgeonID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (Surgery) TableName() string {
	return "surgeries"
}
