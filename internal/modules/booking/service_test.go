package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"staylix/internal/database/dbtest"
	"staylix/internal/domain"
	"staylix/internal/modules/discount"
	"staylix/internal/modules/payment"
	"staylix/internal/repository"
)

const (
	sandboxSecret = "test-sandbox-secret"
	ownerID       = int64(99)
)

var clock = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func (n *recordingNotifier) Notify(ev domain.BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) types() []domain.BookingEventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.BookingEventType, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	svc       *Service
	sandbox   *payment.Sandbox
	notifier  *recordingNotifier
	discounts *repository.DiscountRepository
	hotel     *domain.Hotel
	room      *domain.Room
}

func newFixture(t *testing.T, opts Options, capacity int) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	catalog := repository.NewCatalogRepository(db)

	hotel := &domain.Hotel{OwnerID: ownerID, Name: "Lakeside", IsActive: true}
	require.NoError(t, catalog.CreateHotel(context.Background(), hotel))
	room := &domain.Room{
		HotelID:       hotel.ID,
		Title:         "Deluxe King",
		RoomType:      domain.RoomDeluxe,
		PricePerNight: decimal.NewFromInt(100),
		TotalRooms:    capacity,
	}
	require.NoError(t, catalog.CreateRoom(context.Background(), room))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	sandbox := payment.NewSandbox(sandboxSecret, "INR")
	notifier := &recordingNotifier{}
	svc := NewService(repository.NewBookingRepository(db, nil), catalog, sandbox, notifier, opts, log)
	svc.now = func() time.Time { return clock }

	return &fixture{
		db:        db,
		svc:       svc,
		sandbox:   sandbox,
		notifier:  notifier,
		discounts: repository.NewDiscountRepository(db),
		hotel:     hotel,
		room:      room,
	}
}

// addRoom adds another single-unit room to the fixture hotel, priced like f.room.
func (f *fixture) addRoom(t *testing.T, title string) *domain.Room {
	t.Helper()
	room := &domain.Room{
		HotelID:       f.hotel.ID,
		Title:         title,
		RoomType:      domain.RoomDouble,
		PricePerNight: f.room.PricePerNight,
		TotalRooms:    1,
	}
	require.NoError(t, repository.NewCatalogRepository(f.db).CreateRoom(context.Background(), room))
	return room
}

func traveler(id int64) domain.Principal {
	return domain.Principal{UserID: id, Name: "Traveler", Email: "t@example.com", Role: domain.RoleUser}
}

func mustDate(s string) *Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func (f *fixture) request(in, out string) CreateBookingRequest {
	nights := int64(mustDate(out).Sub(mustDate(in).Time).Hours() / 24)
	return CreateBookingRequest{
		RoomID:      f.room.ID,
		HotelID:     f.hotel.ID,
		OwnerID:     ownerID,
		CheckIn:     mustDate(in),
		CheckOut:    mustDate(out),
		Guests:      2,
		TotalAmount: f.room.PricePerNight.Mul(decimal.NewFromInt(nights)),
	}
}

// paid attaches a settled sandbox payment to req.
func (f *fixture) paid(t *testing.T, req CreateBookingRequest) CreateBookingRequest {
	t.Helper()
	order, err := f.sandbox.CreateOrder(context.Background(), req.TotalAmount)
	require.NoError(t, err)
	proof, err := f.sandbox.Settle(order.ID)
	require.NoError(t, err)
	req.OrderID, req.PaymentID, req.Signature = proof.OrderID, proof.PaymentID, proof.Signature
	return req
}

func (f *fixture) seedDiscount(t *testing.T, code string, limit *int) *domain.Discount {
	t.Helper()
	d := &domain.Discount{
		Code:             code,
		Description:      "New year",
		DiscountType:     domain.DiscountPercentage,
		DiscountValue:    decimal.NewFromInt(10),
		MinBookingAmount: decimal.Zero,
		StartDate:        time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		UsageLimit:       limit,
		IsActive:         true,
		CreatedBy:        1,
		RequestStatus:    domain.RequestApproved,
	}
	require.NoError(t, f.discounts.Create(context.Background(), d))
	return d
}

func (f *fixture) usageCount(t *testing.T, id int64) int {
	t.Helper()
	d, err := f.discounts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return d.UsageCount
}

func (f *fixture) bookingCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&domain.Booking{}).Count(&n).Error)
	return n
}

func TestCreateBooking_PaidIsConfirmed(t *testing.T) {
	f := newFixture(t, Options{}, 1)

	view, err := f.svc.CreateBooking(context.Background(), traveler(1), f.paid(t, f.request("2025-06-01", "2025-06-03")))
	require.NoError(t, err)

	assert.NotZero(t, view.ID)
	assert.Equal(t, domain.BookingConfirmed, view.BookingStatus)
	assert.Equal(t, domain.PaymentPaid, view.PaymentStatus)
	assert.Equal(t, "gateway", view.PaymentInfo.Method)
	assert.True(t, view.TotalAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, view.DiscountAmount.IsZero())
	assert.Nil(t, view.DiscountCode)
	assert.Equal(t, ownerID, view.OwnerID)
	assert.Equal(t, []domain.BookingEventType{domain.EventBookingCreated}, f.notifier.types())
}

func TestCreateBooking_HalfOpenRanges(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, traveler(1), f.request("2025-01-10", "2025-01-12"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, traveler(2), f.request("2025-01-12", "2025-01-14"))
	require.NoError(t, err, "back-to-back stays share no night")

	_, err = f.svc.CreateBooking(ctx, traveler(3), f.request("2025-01-11", "2025-01-13"))
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreateBooking_ContainedRangeRejected(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, traveler(1), f.request("2025-01-10", "2025-01-13"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, traveler(2), f.request("2025-01-11", "2025-01-12"))
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreateBooking_CancelFreesCapacity(t *testing.T) {
	f := newFixture(t, Options{}, 1)
	ctx := context.Background()

	a, err := f.svc.CreateBooking(ctx, traveler(1), f.paid(t, f.request("2025-06-01", "2025-06-03")))
	require.NoError(t, err)
	assert.True(t, a.TotalAmount.Equal(decimal.NewFromInt(200)))

	_, err = f.svc.CreateBooking(ctx, traveler(2), f.paid(t, f.request("2025-06-02", "2025-06-04")))
	require.ErrorIs(t, err, ErrNotAvailable)

	cancelled, err := f.svc.Cancel(ctx, traveler(1), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.BookingStatus)
	require.NotNil(t, cancelled.CancelledAt)

	c, err := f.svc.CreateBooking(ctx, traveler(2), f.paid(t, f.request("2025-06-02", "2025-06-04")))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, c.BookingStatus)

	assert.Equal(t, []domain.BookingEventType{
		domain.EventBookingCreated,
		domain.EventBookingCancelled,
		domain.EventBookingCreated,
	}, f.notifier.types())
}

func TestCreateBooking_CapacityAboveOne(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 2)
	ctx := context.Background()

	for i := int64(1); i <= 2; i++ {
		_, err := f.svc.CreateBooking(ctx, traveler(i), f.request("2025-03-01", "2025-03-05"))
		require.NoError(t, err)
	}
	_, err := f.svc.CreateBooking(ctx, traveler(3), f.request("2025-03-04", "2025-03-06"))
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreateBooking_SelfBooking(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	owner := domain.Principal{UserID: ownerID, Role: domain.RoleOwner}

	_, err := f.svc.CreateBooking(context.Background(), owner, f.request("2025-01-10", "2025-01-12"))
	assert.ErrorIs(t, err, ErrSelfBooking)

	// Caller owns the hotel but claims another owner id.
	req := f.request("2025-01-10", "2025-01-12")
	req.OwnerID = 5
	_, err = f.svc.CreateBooking(context.Background(), owner, req)
	assert.ErrorIs(t, err, ErrSelfBooking)
	assert.Zero(t, f.bookingCount(t))
}

func TestCreateBooking_TamperedSignature(t *testing.T) {
	f := newFixture(t, Options{}, 1)
	d := f.seedDiscount(t, "NY10", nil)

	req := f.paid(t, f.request("2025-01-10", "2025-01-12"))
	req.DiscountCode = "NY10"
	req.Signature = payment.Sign("someone-else", req.OrderID, req.PaymentID)

	_, err := f.svc.CreateBooking(context.Background(), traveler(1), req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Zero(t, f.bookingCount(t))
	assert.Zero(t, f.usageCount(t, d.ID))
	assert.Empty(t, f.notifier.types())
}

func TestCreateBooking_SignatureMustMatchExactly(t *testing.T) {
	f := newFixture(t, Options{}, 1)

	req := f.paid(t, f.request("2025-01-10", "2025-01-12"))
	req.Signature = " " + strings.ToUpper(req.Signature) + " "

	_, err := f.svc.CreateBooking(context.Background(), traveler(1), req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Zero(t, f.bookingCount(t))
}

func TestCreateBooking_PaymentRequired(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: false}, 1)

	_, err := f.svc.CreateBooking(context.Background(), traveler(1), f.request("2025-01-10", "2025-01-12"))
	assert.ErrorIs(t, err, ErrPaymentRequired)
}

func TestCreateBooking_PayLaterStaysPending(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)

	view, err := f.svc.CreateBooking(context.Background(), traveler(1), f.request("2025-01-10", "2025-01-12"))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, view.BookingStatus)
	assert.Equal(t, domain.PaymentPending, view.PaymentStatus)
	assert.Empty(t, view.PaymentInfo.PaymentID)
}

func TestCreateBooking_PartialProof(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	req := f.request("2025-01-10", "2025-01-12")
	req.PaymentID = "pay_123"

	_, err := f.svc.CreateBooking(context.Background(), traveler(1), req)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "order_id", fe.Field)
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)

	tests := []struct {
		name  string
		edit  func(*CreateBookingRequest)
		field string
	}{
		{"missing room", func(r *CreateBookingRequest) { r.RoomID = 0 }, "room_id"},
		{"missing check-in", func(r *CreateBookingRequest) { r.CheckIn = nil }, "check_in"},
		{"reversed dates", func(r *CreateBookingRequest) { r.CheckOut = mustDate("2025-01-09") }, "check_out"},
		{"same day", func(r *CreateBookingRequest) { r.CheckOut = mustDate("2025-01-10") }, "check_out"},
		{"no guests", func(r *CreateBookingRequest) { r.Guests = 0 }, "guests"},
		{"zero amount", func(r *CreateBookingRequest) { r.TotalAmount = decimal.Zero }, "total_amount"},
		{"wrong hotel", func(r *CreateBookingRequest) { r.HotelID = f.hotel.ID + 1 }, "hotel_id"},
		{"wrong owner", func(r *CreateBookingRequest) { r.OwnerID = 5 }, "owner_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("2025-01-10", "2025-01-12")
			tt.edit(&req)
			_, err := f.svc.CreateBooking(context.Background(), traveler(1), req)
			require.ErrorIs(t, err, ErrValidation)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestCreateBooking_RoomNotFound(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	req := f.request("2025-01-10", "2025-01-12")
	req.RoomID = 9999

	_, err := f.svc.CreateBooking(context.Background(), traveler(1), req)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateBooking_PriceMismatch(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	req := f.request("2025-01-10", "2025-01-12")
	req.TotalAmount = decimal.NewFromInt(150)

	_, err := f.svc.CreateBooking(context.Background(), traveler(1), req)
	assert.ErrorIs(t, err, ErrPriceMismatch)
}

func TestCreateBooking_Forbidden(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	blocked := traveler(1)
	blocked.Blocked = true

	_, err := f.svc.CreateBooking(context.Background(), blocked, f.request("2025-01-10", "2025-01-12"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateBooking_AppliesDiscount(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	d := f.seedDiscount(t, "NY10", nil)

	req := f.request("2025-01-10", "2025-01-13")
	req.DiscountCode = " ny10 "
	view, err := f.svc.CreateBooking(context.Background(), traveler(1), req)
	require.NoError(t, err)

	require.NotNil(t, view.DiscountCode)
	assert.Equal(t, "NY10", *view.DiscountCode)
	assert.True(t, view.OriginalAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, view.DiscountAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, view.TotalAmount.Equal(decimal.NewFromInt(270)))
	assert.Equal(t, 1, f.usageCount(t, d.ID))
}

func TestCreateBooking_UnusableDiscountDropped(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)

	req := f.request("2025-01-10", "2025-01-12")
	req.DiscountCode = "NOPE"
	view, err := f.svc.CreateBooking(context.Background(), traveler(1), req)
	require.NoError(t, err)
	assert.Nil(t, view.DiscountCode)
	assert.True(t, view.TotalAmount.Equal(decimal.NewFromInt(200)))
}

func TestCreateBooking_StrictDiscount(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true, StrictDiscount: true}, 1)
	d := f.seedDiscount(t, "BIG", nil)
	require.NoError(t, f.db.Model(&domain.Discount{}).Where("id = ?", d.ID).
		Update("min_booking_amount", decimal.NewFromInt(500)).Error)

	req := f.request("2025-01-10", "2025-01-12")
	req.DiscountCode = "BIG"
	_, err := f.svc.CreateBooking(context.Background(), traveler(1), req)

	var rej *DiscountRejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, discount.ReasonBelowMinimum, rej.Cause.Reason)
	assert.Zero(t, f.bookingCount(t))
	assert.Zero(t, f.usageCount(t, d.ID))
}

func TestCreateBooking_ConcurrentNoOverbooking(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateBooking(context.Background(), traveler(int64(i+1)), f.request("2025-02-01", "2025-02-03"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrNotAvailable)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(1), f.bookingCount(t))
}

func TestCreateBooking_ConcurrentUsageLimit(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	limit := 2
	d := f.seedDiscount(t, "TWICE", &limit)

	// One room per booker, so the room locks never serialize them and only
	// the usage guard in the transaction stands between them.
	const n = 6
	rooms := make([]*domain.Room, n)
	for i := range rooms {
		rooms[i] = f.addRoom(t, fmt.Sprintf("Room %d", i+1))
	}

	var wg sync.WaitGroup
	views := make([]*BookingView, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := f.request("2025-01-20", "2025-01-22")
			req.RoomID = rooms[i].ID
			req.DiscountCode = "TWICE"
			views[i], errs[i] = f.svc.CreateBooking(context.Background(), traveler(int64(i+1)), req)
		}(i)
	}
	wg.Wait()

	discounted := 0
	for i := range views {
		require.NoError(t, errs[i])
		if views[i].DiscountCode != nil {
			discounted++
		}
	}
	assert.Equal(t, 2, discounted)
	assert.Equal(t, 2, f.usageCount(t, d.ID))
	assert.Equal(t, int64(n), f.bookingCount(t))
}

func TestCancel(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, traveler(1), f.request("2025-01-10", "2025-01-12"))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, traveler(2), b.ID)
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	_, err = f.svc.Cancel(ctx, traveler(1), b.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, traveler(1), b.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	_, err = f.svc.Cancel(ctx, traveler(1), 4242)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_DoesNotRestoreDiscountUse(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	ctx := context.Background()
	d := f.seedDiscount(t, "NY10", nil)

	req := f.request("2025-01-10", "2025-01-12")
	req.DiscountCode = "NY10"
	b, err := f.svc.CreateBooking(ctx, traveler(1), req)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, traveler(1), b.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, f.usageCount(t, d.ID))
}

func TestListings(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 5)
	ctx := context.Background()

	first, err := f.svc.CreateBooking(ctx, traveler(1), f.request("2025-01-10", "2025-01-12"))
	require.NoError(t, err)
	second, err := f.svc.CreateBooking(ctx, traveler(1), f.request("2025-02-10", "2025-02-12"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, traveler(2), f.request("2025-03-10", "2025-03-12"))
	require.NoError(t, err)

	mine, err := f.svc.MyBookings(ctx, traveler(1))
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.ElementsMatch(t, []int64{first.ID, second.ID}, []int64{mine[0].ID, mine[1].ID})

	_, err = f.svc.OwnerBookings(ctx, traveler(1))
	assert.ErrorIs(t, err, ErrForbidden)

	owned, err := f.svc.OwnerBookings(ctx, domain.Principal{UserID: ownerID, Role: domain.RoleOwner})
	require.NoError(t, err)
	require.Len(t, owned, 3)
	require.NotNil(t, owned[0].Hotel)
	assert.Equal(t, "Lakeside", owned[0].Hotel.Name)

	none, err := f.svc.OwnerBookings(ctx, domain.Principal{UserID: 5, Role: domain.RoleOwner})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGet_Visibility(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, traveler(1), f.request("2025-01-10", "2025-01-12"))
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, traveler(1), b.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, domain.Principal{UserID: ownerID, Role: domain.RoleOwner}, b.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, traveler(3), b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDisplayStatus_CompletedAfterCheckout(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, traveler(1), f.request("2025-01-10", "2025-01-12"))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.DisplayStatus)

	f.svc.now = func() time.Time { return time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC) }
	got, err := f.svc.Get(ctx, traveler(1), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.DisplayStatus)
	assert.Equal(t, domain.BookingPending, got.BookingStatus)
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t, Options{AllowPayLater: true}, 1)
	ctx := context.Background()

	avail, err := f.svc.CheckAvailability(ctx, f.room.ID, *mustDate("2025-01-10"), *mustDate("2025-01-12"))
	require.NoError(t, err)
	assert.True(t, avail.Available)

	_, err = f.svc.CreateBooking(ctx, traveler(1), f.request("2025-01-10", "2025-01-12"))
	require.NoError(t, err)

	avail, err = f.svc.CheckAvailability(ctx, f.room.ID, *mustDate("2025-01-11"), *mustDate("2025-01-15"))
	require.NoError(t, err)
	assert.False(t, avail.Available)
	assert.Equal(t, int64(1), avail.ActiveCount)

	_, err = f.svc.CheckAvailability(ctx, f.room.ID, *mustDate("2025-01-12"), *mustDate("2025-01-10"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.CheckAvailability(ctx, 777, *mustDate("2025-01-10"), *mustDate("2025-01-12"))
	assert.True(t, errors.Is(err, ErrRoomNotFound))
}
