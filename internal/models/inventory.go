package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked supply.
type InventoryItem struct {
	Model
	Name         string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_inventory_items_name" json:"name"`
	Category     InventoryCategory   `gorm:"type:varchar(50);not null;index" json:"category"`
	Quantity     int                 `gorm:"not null;check:chk_inventory_items_quantity,quantity >= 0" json:"quantity"`
	Unit         InventoryUnit       `gorm:"type:varchar(20);not null" json:"unit"`
	ReorderLevel int                 `gorm:"not null;default:0;check:chk_inventory_items_reorder_level,reorder_level >= 0" json:"reorder_level"`
	UnitCost     decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"unit_cost"`
	Supplier     *string             `gorm:"type:varchar(100)" json:"supplier,omitempty"`
	ExpiryDate   *Date               `gorm:"index" json:"expiry_date,omitempty"`

	NeedsReorder bool `gorm:"-" json:"needs_reorder"`
	IsExpired    bool `gorm:"-" json:"is_expired"`
}

// TableName overrides the table name
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// BelowReorderLevel reports whether stock has reached the reorder threshold.
func (i *InventoryItem) BelowReorderLevel() bool {
	return i.Quantity <= i.ReorderLevel
}

// Expired reports whether the item's expiry date lies before today.
func (i *InventoryItem) Expired(today Date) bool {
	return i.ExpiryDate != nil && !i.ExpiryDate.IsZero() && i.ExpiryDate.Before(today)
}

// Derive fills computed fields.
func (i *InventoryItem) Derive(now time.Time) {
	i.NeedsReorder = i.BelowReorderLevel()
	i.IsExpired = i.Expired(DateOf(now))
}
