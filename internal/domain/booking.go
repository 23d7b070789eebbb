package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ActiveBookingStatuses are the statuses that consume room capacity.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// PaymentInfo references the external gateway transaction. It is stored for
// audit and never re-validated after the booking is created.
type PaymentInfo struct {
	PaymentID string `json:"payment_id,omitempty" gorm:"size:128"`
	OrderID   string `json:"order_id,omitempty" gorm:"size:128"`
	Method    string `json:"method,omitempty" gorm:"size:32"`
}

type Booking struct {
	ID      int64 `json:"id" gorm:"primaryKey"`
	UserID  int64 `json:"user_id" gorm:"not null;index"`
	OwnerID int64 `json:"owner_id" gorm:"not null;index"`
	HotelID int64 `json:"hotel_id" gorm:"not null;index"`
	RoomID  int64 `json:"room_id" gorm:"not null;index:idx_bookings_room_window,priority:1"`

	CheckIn  time.Time `json:"check_in" gorm:"not null;index:idx_bookings_room_window,priority:2"`
	CheckOut time.Time `json:"check_out" gorm:"not null;index:idx_bookings_room_window,priority:3"`
	Guests   int       `json:"guests" gorm:"not null"`

	OriginalAmount decimal.Decimal `json:"original_amount" gorm:"type:decimal(12,2);not null"`
	DiscountCode   *string         `json:"discount_code,omitempty" gorm:"size:64"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(12,2);not null"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`

	BookingStatus BookingStatus `json:"booking_status" gorm:"type:varchar(16);not null;index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null"`
	PaymentInfo   PaymentInfo   `json:"payment_info" gorm:"embedded;embeddedPrefix:payment_"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	Room  *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// IsActive reports whether the booking counts against room capacity.
func (b *Booking) IsActive() bool {
	return slices.Contains(ActiveBookingStatuses, b.BookingStatus)
}

// DisplayStatus derives "completed" for stays that already ended. The stored
// status is never rewritten.
func (b *Booking) DisplayStatus(now time.Time) BookingStatus {
	if b.BookingStatus != BookingCancelled && !b.CheckOut.After(now) {
		return BookingCompleted
	}
	return b.BookingStatus
}

// Nights returns the number of nights in the stay window.
func (b *Booking) Nights() int {
	return Nights(b.CheckIn, b.CheckOut)
}

// Nights counts whole nights between two UTC-midnight dates.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// BookingEventType names the lifecycle events fanned out after a commit.
type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "booking.created"
	EventBookingCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent carries everything the notification side needs without going
// back to the store.
type BookingEvent struct {
	Type          BookingEventType `json:"type"`
	Booking       Booking          `json:"booking"`
	TravelerEmail string           `json:"-"`
	TravelerName  string           `json:"-"`
	HotelName     string           `json:"hotel_name,omitempty"`
	RoomTitle     string           `json:"room_title,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}
