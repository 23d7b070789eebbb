package booking

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"staylix/internal/domain"
)

// Date is a calendar day. It accepts "2006-01-02" or an RFC 3339 timestamp
// and always holds midnight UTC.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{t.UTC()}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return Date{StartOfDay(t)}, nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// StartOfDay keeps the calendar day of t in UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type CreateBookingRequest struct {
	RoomID       int64           `json:"room_id"`
	HotelID      int64           `json:"hotel_id"`
	OwnerID      int64           `json:"owner_id"`
	CheckIn      *Date           `json:"check_in"`
	CheckOut     *Date           `json:"check_out"`
	Guests       int             `json:"guests"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DiscountCode string          `json:"discount_code" validate:"omitempty,max=64"`
	PaymentID    string          `json:"payment_id" validate:"omitempty,max=128"`
	OrderID      string          `json:"order_id" validate:"omitempty,max=128"`
	Signature    string          `json:"signature" validate:"omitempty,max=256"`
}

func (r CreateBookingRequest) hasPaymentProof() bool {
	return r.PaymentID != "" || r.OrderID != "" || r.Signature != ""
}

// BookingView adds the read-time status shown to clients.
type BookingView struct {
	domain.Booking
	DisplayStatus domain.BookingStatus `json:"display_status"`
}

func newView(b domain.Booking, now time.Time) BookingView {
	return BookingView{Booking: b, DisplayStatus: b.DisplayStatus(now)}
}

type Availability struct {
	RoomID      int64 `json:"room_id"`
	Available   bool  `json:"available"`
	ActiveCount int64 `json:"active_count"`
	TotalRooms  int   `json:"total_rooms"`
}
