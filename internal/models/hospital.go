package models

import "github.com/google/uuid"

// Ward is a named unit of beds.
type Ward struct {
	Model
	Name     string `gorm:"type:varchar(50);not null;uniqueIndex:idx_wards_name" json:"name"`
	Capacity int    `gorm:"not null;check:chk_wards_capacity,capacity > 0" json:"capacity"`
}

// TableName overrides the table name
func (Ward) TableName() string {
	return "wards"
}

// Room belongs to exactly one ward.
type Room struct {
	Model
	WardID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rooms_ward_number" json:"ward_id"`
	RoomNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_rooms_ward_number;check:chk_rooms_room_number,btrim(room_number) <> ''" json:"room_number"`
	Capacity   int       `gorm:"not null;check:chk_rooms_capacity,capacity > 0" json:"capacity"`

	Ward *Ward `gorm:"foreignKey:WardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name
func (Room) TableName() string {
	return "rooms"
}
