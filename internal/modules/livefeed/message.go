package livefeed

import (
	"time"

	"staylix/internal/domain"
)

type MessageType string

const (
	MessageHello            MessageType = "hello"
	MessageBookingCreated   MessageType = "booking.created"
	MessageBookingCancelled MessageType = "booking.cancelled"
)

type Message struct {
	Type       MessageType     `json:"type"`
	UserID     int64           `json:"user_id,omitempty"`
	Booking    *domain.Booking `json:"booking,omitempty"`
	HotelName  string          `json:"hotel_name,omitempty"`
	RoomTitle  string          `json:"room_title,omitempty"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
}

// MessageFor converts a booking event for the owner feed.
func MessageFor(ev domain.BookingEvent) Message {
	b := ev.Booking
	b.Hotel, b.Room = nil, nil
	at := ev.OccurredAt
	return Message{
		Type:       MessageType(ev.Type),
		Booking:    &b,
		HotelName:  ev.HotelName,
		RoomTitle:  ev.RoomTitle,
		OccurredAt: &at,
	}
}

// Publish pushes ev to the hotel owner's open connections.
func (h *Hub) Publish(ev domain.BookingEvent) int {
	if !h.IsOnline(ev.Booking.OwnerID) {
		return 0
	}
	return h.SendToUser(ev.Booking.OwnerID, MessageFor(ev))
}
