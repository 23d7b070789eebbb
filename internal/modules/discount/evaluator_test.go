package discount

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staylix/internal/domain"
)

var evalNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func usable() *domain.Discount {
	limit := 10
	return &domain.Discount{
		Code:             "SAVE10",
		DiscountType:     domain.DiscountPercentage,
		DiscountValue:    decimal.NewFromInt(10),
		MinBookingAmount: decimal.NewFromInt(100),
		ApplicableHotels: []int64{1, 2},
		StartDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		UsageLimit:       &limit,
		UsageCount:       3,
		IsActive:         true,
		RequestStatus:    domain.RequestApproved,
	}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var rej *RejectionError
	require.True(t, errors.As(err, &rej), "expected RejectionError, got %v", err)
	return rej.Reason
}

func TestEvaluate_Rejections(t *testing.T) {
	full := 3
	cases := []struct {
		name   string
		mutate func(d *domain.Discount)
		amount int64
		hotel  int64
		want   Reason
	}{
		{"not approved", func(d *domain.Discount) { d.RequestStatus = domain.RequestPending }, 500, 1, ReasonNotApproved},
		{"rejected", func(d *domain.Discount) { d.RequestStatus = domain.RequestRejected }, 500, 1, ReasonNotApproved},
		{"inactive", func(d *domain.Discount) { d.IsActive = false }, 500, 1, ReasonInactive},
		{"not started", func(d *domain.Discount) { d.StartDate = evalNow.Add(time.Hour) }, 500, 1, ReasonOutsideWindow},
		{"expired", func(d *domain.Discount) { d.EndDate = evalNow.Add(-time.Second) }, 500, 1, ReasonOutsideWindow},
		{"usage exhausted", func(d *domain.Discount) { d.UsageLimit = &full }, 500, 1, ReasonUsageLimitReached},
		{"below minimum", func(d *domain.Discount) {}, 99, 1, ReasonBelowMinimum},
		{"wrong hotel", func(d *domain.Discount) {}, 500, 3, ReasonHotelNotApplicable},
		// approval is checked before the active flag
		{"order approval first", func(d *domain.Discount) { d.RequestStatus = domain.RequestPending; d.IsActive = false }, 1, 3, ReasonNotApproved},
		{"order window before usage", func(d *domain.Discount) { d.EndDate = evalNow.Add(-time.Hour); d.UsageLimit = &full }, 500, 1, ReasonOutsideWindow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := usable()
			tc.mutate(d)
			_, err := Evaluate(d, decimal.NewFromInt(tc.amount), tc.hotel, evalNow)
			assert.Equal(t, tc.want, reasonOf(t, err))
		})
	}
}

func TestEvaluate_NotFound(t *testing.T) {
	_, err := Evaluate(nil, decimal.NewFromInt(100), 1, evalNow)
	assert.Equal(t, ReasonNotFound, reasonOf(t, err))
	assert.EqualError(t, err, "Invalid discount code")
}

func TestEvaluate_WindowInclusive(t *testing.T) {
	d := usable()
	_, err := Evaluate(d, decimal.NewFromInt(200), 1, d.StartDate)
	assert.NoError(t, err)
	_, err = Evaluate(d, decimal.NewFromInt(200), 1, d.EndDate)
	assert.NoError(t, err)
}

func TestEvaluate_Percentage(t *testing.T) {
	res, err := Evaluate(usable(), decimal.RequireFromString("333.33"), 2, evalNow)
	require.NoError(t, err)
	assert.Equal(t, "33.33", res.DiscountAmount.StringFixed(2))
	assert.Equal(t, "300.00", res.FinalAmount.StringFixed(2))
}

func TestEvaluate_FixedClampedToAmount(t *testing.T) {
	d := usable()
	d.DiscountType = domain.DiscountFixed
	d.DiscountValue = decimal.NewFromInt(500)
	d.MinBookingAmount = decimal.Zero

	res, err := Evaluate(d, decimal.NewFromInt(300), 1, evalNow)
	require.NoError(t, err)
	assert.True(t, res.DiscountAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, res.FinalAmount.IsZero())
}

func TestEvaluate_EmptyHotelListAppliesEverywhere(t *testing.T) {
	d := usable()
	d.ApplicableHotels = nil
	_, err := Evaluate(d, decimal.NewFromInt(500), 987, evalNow)
	assert.NoError(t, err)
}

func TestEvaluate_NoHotelSkipsRestriction(t *testing.T) {
	_, err := Evaluate(usable(), decimal.NewFromInt(500), 0, evalNow)
	assert.NoError(t, err)
}

func TestEvaluate_UnlimitedUsage(t *testing.T) {
	d := usable()
	d.UsageLimit = nil
	d.UsageCount = 1_000_000
	_, err := Evaluate(d, decimal.NewFromInt(500), 1, evalNow)
	assert.NoError(t, err)
}

func TestEvaluate_DoesNotMutate(t *testing.T) {
	d := usable()
	_, err := Evaluate(d, decimal.NewFromInt(500), 1, evalNow)
	require.NoError(t, err)
	assert.Equal(t, 3, d.UsageCount)
}

func TestComputeAmount(t *testing.T) {
	assert.Equal(t, "100.00", ComputeAmount(domain.DiscountPercentage, decimal.NewFromInt(100), decimal.NewFromInt(100)).StringFixed(2))
	assert.Equal(t, "0.00", ComputeAmount(domain.DiscountFixed, decimal.NewFromInt(-5), decimal.NewFromInt(100)).StringFixed(2))
	assert.Equal(t, "12.35", ComputeAmount(domain.DiscountPercentage, decimal.RequireFromString("12.5"), decimal.RequireFromString("98.76")).StringFixed(2))
}

func TestRejectionError_BelowMinimumMessage(t *testing.T) {
	_, err := Evaluate(usable(), decimal.NewFromInt(50), 1, evalNow)
	assert.EqualError(t, err, "Minimum booking amount of 100.00 required")
}
