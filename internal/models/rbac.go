package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission grants one action on one resource, e.g. "appointments.view".
type Permission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Codename  string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_permissions_codename" json:"codename"`
	Resource  string    `gorm:"type:varchar(50);not null;index" json:"resource"`
	Action    string    `gorm:"type:varchar(20);not null" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Permission) TableName() string {
	return "permissions"
}

// Group is a named role holding a set of permissions.
type Group struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(150);not null;uniqueIndex:idx_groups_name" json:"name"`
	Permissions []Permission `gorm:"many2many:group_permissions;constraint:OnDelete:CASCADE" json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName overrides the table name
func (Group) TableName() string {
	return "groups"
}

// User is an account that can call the API.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username    string     `gorm:"type:varchar(150);not null;uniqueIndex:idx_users_username" json:"username"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	StaffID     *uuid.UUID `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	Groups      []Group    `gorm:"many2many:user_groups;constraint:OnDelete:CASCADE" json:"groups,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Staff *Staff `gorm:"foreignKey:StaffID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
