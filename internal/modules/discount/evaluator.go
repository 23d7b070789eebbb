package discount

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"staylix/internal/domain"
)

type Reason string

const (
	ReasonNotFound           Reason = "not_found"
	ReasonNotApproved        Reason = "not_approved"
	ReasonInactive           Reason = "inactive"
	ReasonOutsideWindow      Reason = "outside_window"
	ReasonUsageLimitReached  Reason = "usage_limit_reached"
	ReasonBelowMinimum       Reason = "below_minimum"
	ReasonHotelNotApplicable Reason = "hotel_not_applicable"
)

var reasonMessages = map[Reason]string{
	ReasonNotFound:           "Invalid discount code",
	ReasonNotApproved:        "Discount code is not approved",
	ReasonInactive:           "Discount code is inactive",
	ReasonOutsideWindow:      "Discount code has expired or not yet valid",
	ReasonUsageLimitReached:  "Discount code usage limit reached",
	ReasonBelowMinimum:       "Minimum booking amount not met",
	ReasonHotelNotApplicable: "Discount code not applicable to this hotel",
}

// RejectionError explains why a code cannot be applied.
type RejectionError struct {
	Reason Reason
	// MinAmount is set for ReasonBelowMinimum.
	MinAmount decimal.Decimal
}

func (e *RejectionError) Error() string {
	if e.Reason == ReasonBelowMinimum {
		return fmt.Sprintf("Minimum booking amount of %s required", e.MinAmount.StringFixed(2))
	}
	return reasonMessages[e.Reason]
}

func reject(r Reason) error { return &RejectionError{Reason: r} }

type Result struct {
	Discount       *domain.Discount
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

// Evaluate checks d against amount and hotelID at now and computes the
// discount. Checks run in a fixed order and stop at the first failure.
// hotelID 0 skips the hotel restriction; previews may not know the hotel yet.
// Evaluate never changes d.
func Evaluate(d *domain.Discount, amount decimal.Decimal, hotelID int64, now time.Time) (Result, error) {
	switch {
	case d == nil:
		return Result{}, reject(ReasonNotFound)
	case d.RequestStatus != domain.RequestApproved:
		return Result{}, reject(ReasonNotApproved)
	case !d.IsActive:
		return Result{}, reject(ReasonInactive)
	case !d.InWindow(now):
		return Result{}, reject(ReasonOutsideWindow)
	case !d.HasUsageLeft():
		return Result{}, reject(ReasonUsageLimitReached)
	case amount.LessThan(d.MinBookingAmount):
		return Result{}, &RejectionError{Reason: ReasonBelowMinimum, MinAmount: d.MinBookingAmount}
	case hotelID != 0 && !d.AppliesToHotel(hotelID):
		return Result{}, reject(ReasonHotelNotApplicable)
	}

	off := ComputeAmount(d.DiscountType, d.DiscountValue, amount)
	return Result{
		Discount:       d,
		DiscountAmount: off,
		FinalAmount:    amount.Sub(off),
	}, nil
}

// ComputeAmount returns the discount for amount, clamped to [0, amount].
// Percentages are rounded to two decimal places.
func ComputeAmount(kind domain.DiscountType, value, amount decimal.Decimal) decimal.Decimal {
	var off decimal.Decimal
	if kind == domain.DiscountPercentage {
		off = amount.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
	} else {
		off = value
	}

	if off.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(off, amount)
}
