package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records one lifecycle operation against an entity.
type AuditLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Username     string     `gorm:"type:varchar(150)" json:"username,omitempty"`
	Action       string     `gorm:"type:varchar(20);not null;index" json:"action"` // create, update, delete
	ResourceType string     `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string     `gorm:"type:varchar(64);index" json:"resource_id"`
	Status       string     `gorm:"type:varchar(20);index" json:"status"` // success, rejected, failure
	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
	Duration     int64      `json:"duration_ms"`
	CreatedAt    time.Time  `gorm:"index" json:"timestamp"`
}

// TableName overrides the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate hook
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
