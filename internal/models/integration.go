package models

import "time"

// ExternalIntegration is a connection to an outside system such as a lab
// or insurer platform.
type ExternalIntegration struct {
	Model
	SystemName  string     `gorm:"type:varchar(100);not null;index" json:"system_name"`
	APIEndpoint string     `gorm:"type:varchar(200);not null" json:"api_endpoint"`
	LastSync    *time.Time `json:"last_sync,omitempty"`
	Status      string     `gorm:"type:varchar(50);not null;index" json:"status"`
	Notes       *string    `gorm:"type:text" json:"notes,omitempty"`
}

// TableName overrides the table name
func (ExternalIntegration) TableName() string {
	return "external_integrations"
}
