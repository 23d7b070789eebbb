package discount

import (
	"time"

	"github.com/shopspring/decimal"

	"staylix/internal/domain"
)

// UpsertRequest is the body for create, update and owner requests. Pointer
// fields distinguish "absent" from zero on update.
type UpsertRequest struct {
	Code             *string          `json:"code"`
	Description      *string          `json:"description"`
	DiscountType     *string          `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue    *decimal.Decimal `json:"discount_value"`
	MinBookingAmount *decimal.Decimal `json:"min_booking_amount"`
	ApplicableHotels []int64          `json:"applicable_hotels" validate:"omitempty,dive,gt=0"`
	StartDate        *time.Time       `json:"start_date"`
	EndDate          *time.Time       `json:"end_date"`
	UsageLimit       *int             `json:"usage_limit" validate:"omitempty,gte=1"`
	IsActive         *bool            `json:"is_active"`
}

type ValidateRequest struct {
	Code          string          `json:"code" validate:"required"`
	BookingAmount decimal.Decimal `json:"booking_amount"`
	HotelID       int64           `json:"hotel_id" validate:"gte=0"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// Preview is what a validate call returns.
type Preview struct {
	Code           string              `json:"code"`
	Description    string              `json:"description"`
	DiscountType   domain.DiscountType `json:"discount_type"`
	DiscountValue  decimal.Decimal     `json:"discount_value"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	FinalAmount    decimal.Decimal     `json:"final_amount"`
}
