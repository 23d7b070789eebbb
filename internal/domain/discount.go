package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Discount is a promotional code. UsageCount only ever grows: cancelling a
// booking does not give the use back.
type Discount struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	Code             string          `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Description      string          `json:"description" gorm:"type:text;not null"`
	DiscountType     DiscountType    `json:"discount_type" gorm:"type:varchar(16);not null"`
	DiscountValue    decimal.Decimal `json:"discount_value" gorm:"type:decimal(12,2);not null"`
	MinBookingAmount decimal.Decimal `json:"min_booking_amount" gorm:"type:decimal(12,2);not null"`
	ApplicableHotels []int64         `json:"applicable_hotels" gorm:"serializer:json"`
	StartDate        time.Time       `json:"start_date" gorm:"not null"`
	EndDate          time.Time       `json:"end_date" gorm:"not null"`
	UsageLimit       *int            `json:"usage_limit"`
	UsageCount       int             `json:"usage_count" gorm:"not null"`
	IsActive         bool            `json:"is_active" gorm:"not null"`
	CreatedBy        int64           `json:"created_by" gorm:"not null"`
	RequestStatus    RequestStatus   `json:"request_status" gorm:"type:varchar(16);not null;index"`
	RequestedBy      *int64          `json:"requested_by,omitempty" gorm:"index"`
	RejectionReason  string          `json:"rejection_reason,omitempty" gorm:"type:text"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NormalizeCode is the single place codes are case-folded for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// InWindow treats both ends of the validity window as inclusive.
func (d *Discount) InWindow(now time.Time) bool {
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

func (d *Discount) HasUsageLeft() bool {
	return d.UsageLimit == nil || d.UsageCount < *d.UsageLimit
}

// AppliesToHotel is true for every hotel when the restriction list is empty.
func (d *Discount) AppliesToHotel(hotelID int64) bool {
	if len(d.ApplicableHotels) == 0 {
		return true
	}
	for _, id := range d.ApplicableHotels {
		if id == hotelID {
			return true
		}
	}
	return false
}
