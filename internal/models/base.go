package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model carries the identity and bookkeeping columns shared by every entity.
type Model struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Meta exposes the embedded bookkeeping columns.
func (m *Model) Meta() *Model {
	return m
}

// Entity is implemented by every persisted domain record.
type Entity interface {
	Meta() *Model
}

// Deriver is implemented by entities with computed, non-persisted fields.
type Deriver interface {
	Derive(now time.Time)
}
