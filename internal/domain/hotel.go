package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomDeluxe RoomType = "deluxe"
	RoomSuite  RoomType = "suite"
)

type Address struct {
	City    string `json:"city,omitempty" gorm:"size:128"`
	State   string `json:"state,omitempty" gorm:"size:128"`
	Country string `json:"country,omitempty" gorm:"size:128"`
	Pincode string `json:"pincode,omitempty" gorm:"size:16"`
}

type Hotel struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	OwnerID     int64     `json:"owner_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Address     Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Amenities   []string  `json:"amenities,omitempty" gorm:"serializer:json"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Room is a room type inside a hotel. TotalRooms is the number of identical
// units that can be booked for the same night.
type Room struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	HotelID       int64           `json:"hotel_id" gorm:"not null;index"`
	Title         string          `json:"title" gorm:"size:255;not null"`
	RoomType      RoomType        `json:"room_type" gorm:"type:varchar(16);not null"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:decimal(12,2);not null"`
	TotalRooms    int             `json:"total_rooms" gorm:"not null"`
	Amenities     []string        `json:"amenities,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}
