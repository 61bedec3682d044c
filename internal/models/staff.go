package models

import "time"

// Staff is an employee of the hospital.
type Staff struct {
	Model
	StaffID    string      `gorm:"type:varchar(20);not null;uniqueIndex:idx_staff_staff_id" json:"staff_id"`
	FirstName  string      `gorm:"type:varchar(50);not null;index" json:"first_name"`
	LastName   string      `gorm:"type:varchar(50);not null" json:"last_name"`
	Role       StaffRole   `gorm:"type:varchar(50);not null;index" json:"role"`
	Department *Department `gorm:"type:varchar(50);index" json:"department,omitempty"`
	Phone      string      `gorm:"type:varchar(20);not null" json:"phone"`
	Email      *string     `gorm:"type:varchar(254);uniqueIndex:idx_staff_email" json:"email,omitempty"`
	Schedule   *string     `gorm:"type:text" json:"schedule,omitempty"`
	HireDate   *Date       `json:"hire_date,omitempty"`
	IsActive   bool        `gorm:"not null" json:"is_active"`

	IsMedicalStaff bool `gorm:"-" json:"is_medical_staff"`
}

// TableName overrides the table name
func (Staff) TableName() string {
	return "staff"
}

// Derive fills computed fields.
func (s *Staff) Derive(time.Time) {
	s.IsMedicalStaff = s.Role.IsMedical()
}
