package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"staylix/internal/domain"
	"staylix/internal/modules/discount"
	"staylix/internal/modules/payment"
	"staylix/internal/pkg/validator"
	"staylix/internal/repository"
)

type Options struct {
	// AllowPayLater lets a booking be created without payment proof. Such
	// bookings stay pending/pending.
	AllowPayLater bool
	// StrictDiscount rejects the booking when a supplied code cannot be
	// applied instead of dropping the discount.
	StrictDiscount bool
}

// Service is the booking orchestrator.
type Service struct {
	bookings BookingRepository
	rooms    RoomCatalog
	gateway  payment.Gateway
	notifier Notifier
	opts     Options
	log      *logrus.Logger
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomCatalog,
	gateway payment.Gateway,
	notifier Notifier,
	opts Options,
	log *logrus.Logger,
) *Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		gateway:  gateway,
		notifier: notifier,
		opts:     opts,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking validates the request, re-checks capacity and the discount
// inside the room transaction, and persists the booking. Notification happens
// after commit and never affects the result.
func (s *Service) CreateBooking(ctx context.Context, p domain.Principal, req CreateBookingRequest) (*BookingView, error) {
	if !p.Can(domain.CapBook) {
		return nil, ErrForbidden
	}
	if req.OwnerID != 0 && req.OwnerID == p.UserID {
		return nil, ErrSelfBooking
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	checkIn, checkOut := req.CheckIn.Time, req.CheckOut.Time

	room, err := s.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("load room: %w", err)
	}
	if room.Hotel == nil || room.HotelID != req.HotelID {
		return nil, fieldErr("hotel_id", "Room does not belong to this hotel")
	}
	if room.Hotel.OwnerID == p.UserID {
		return nil, ErrSelfBooking
	}
	if room.Hotel.OwnerID != req.OwnerID {
		return nil, fieldErr("owner_id", "Owner does not match hotel")
	}

	nights := domain.Nights(checkIn, checkOut)
	expected := room.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))
	if !expected.Equal(req.TotalAmount) {
		return nil, fmt.Errorf("%w: expected %s", ErrPriceMismatch, expected.StringFixed(2))
	}

	proof := payment.Proof{
		OrderID:   strings.TrimSpace(req.OrderID),
		PaymentID: strings.TrimSpace(req.PaymentID),
		Signature: req.Signature,
	}
	paid := req.hasPaymentProof()
	if !paid && !s.opts.AllowPayLater {
		return nil, ErrPaymentRequired
	}

	// Advisory read; the authoritative count runs again under the room lock.
	active, err := s.bookings.CountActiveOverlapping(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if active >= int64(room.TotalRooms) {
		return nil, ErrNotAvailable
	}

	if paid && !s.gateway.VerifyPayment(proof) {
		s.log.WithFields(logrus.Fields{
			"user_id":  p.UserID,
			"room_id":  room.ID,
			"order_id": proof.OrderID,
		}).Warn("payment signature rejected")
		return nil, ErrInvalidSignature
	}

	b := &domain.Booking{
		UserID:         p.UserID,
		OwnerID:        room.Hotel.OwnerID,
		HotelID:        room.HotelID,
		RoomID:         room.ID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Guests:         req.Guests,
		OriginalAmount: req.TotalAmount,
		DiscountAmount: decimal.Zero,
		TotalAmount:    req.TotalAmount,
		BookingStatus:  domain.BookingPending,
		PaymentStatus:  domain.PaymentPending,
	}
	if paid {
		b.BookingStatus = domain.BookingConfirmed
		b.PaymentStatus = domain.PaymentPaid
		b.PaymentInfo = domain.PaymentInfo{
			PaymentID: proof.PaymentID,
			OrderID:   proof.OrderID,
			Method:    "gateway",
		}
	}

	code := domain.NormalizeCode(req.DiscountCode)
	err = s.bookings.WithRoomTx(ctx, room.ID, func(tx repository.BookingTx) error {
		locked, err := tx.LockRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		n, err := tx.CountActiveOverlapping(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if n >= int64(locked.TotalRooms) {
			return ErrNotAvailable
		}

		if code != "" {
			if err := s.applyDiscount(ctx, tx, b, code); err != nil {
				return err
			}
		}

		return tx.CreateBooking(ctx, b)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrBusy
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoomNotFound
		case errors.Is(err, ErrNotAvailable):
			return nil, err
		}
		var rej *DiscountRejectedError
		if errors.As(err, &rej) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	b.Hotel = room.Hotel
	room.Hotel = nil
	b.Room = room

	s.log.WithFields(logrus.Fields{
		"booking_id":      b.ID,
		"user_id":         b.UserID,
		"room_id":         b.RoomID,
		"booking_status":  b.BookingStatus,
		"payment_status":  b.PaymentStatus,
		"discount_code":   code,
		"discount_amount": b.DiscountAmount.String(),
		"total_amount":    b.TotalAmount.String(),
	}).Info("booking created")

	s.notifier.Notify(domain.BookingEvent{
		Type:          domain.EventBookingCreated,
		Booking:       *b,
		TravelerEmail: p.Email,
		TravelerName:  p.Name,
		HotelName:     b.Hotel.Name,
		RoomTitle:     b.Room.Title,
		OccurredAt:    s.now(),
	})

	view := newView(*b, s.now())
	return &view, nil
}

// applyDiscount evaluates code against the booking inside tx and consumes one
// use. A code that cannot be applied is dropped unless strict mode is on.
func (s *Service) applyDiscount(ctx context.Context, tx repository.BookingTx, b *domain.Booking, code string) error {
	d, err := tx.FindDiscountByCode(ctx, code)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err != nil {
		d = nil
	}

	res, evalErr := discount.Evaluate(d, b.OriginalAmount, b.HotelID, s.now())
	if evalErr == nil {
		ok, err := tx.ConsumeDiscount(ctx, d.ID)
		if err != nil {
			return err
		}
		if !ok {
			evalErr = &discount.RejectionError{Reason: discount.ReasonUsageLimitReached}
		}
	}

	if evalErr != nil {
		var rej *discount.RejectionError
		if !errors.As(evalErr, &rej) {
			return evalErr
		}
		if s.opts.StrictDiscount {
			return &DiscountRejectedError{Cause: rej}
		}
		s.log.WithFields(logrus.Fields{
			"user_id": b.UserID,
			"room_id": b.RoomID,
			"code":    code,
			"reason":  rej.Reason,
		}).Info("discount dropped from booking")
		return nil
	}

	applied := d.Code
	b.DiscountCode = &applied
	b.DiscountAmount = res.DiscountAmount
	b.TotalAmount = res.FinalAmount
	return nil
}

// Cancel lets the traveler who made the booking cancel it once.
func (s *Service) Cancel(ctx context.Context, p domain.Principal, id int64) (*BookingView, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != p.UserID {
		return nil, ErrNotBookingOwner
	}
	if !b.IsActive() {
		return nil, ErrAlreadyCancelled
	}

	ok, err := s.bookings.Cancel(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrBusy
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyCancelled
	}

	b, err = s.bookings.GetWithDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}

	s.log.WithFields(logrus.Fields{"booking_id": id, "user_id": p.UserID}).Info("booking cancelled")

	ev := domain.BookingEvent{
		Type:          domain.EventBookingCancelled,
		Booking:       *b,
		TravelerEmail: p.Email,
		TravelerName:  p.Name,
		OccurredAt:    s.now(),
	}
	if b.Hotel != nil {
		ev.HotelName = b.Hotel.Name
	}
	if b.Room != nil {
		ev.RoomTitle = b.Room.Title
	}
	s.notifier.Notify(ev)

	view := newView(*b, s.now())
	return &view, nil
}

// MyBookings lists the caller's bookings as a traveler, newest first.
func (s *Service) MyBookings(ctx context.Context, p domain.Principal) ([]BookingView, error) {
	list, err := s.bookings.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return s.views(list), nil
}

// OwnerBookings lists bookings for hotels the caller owns.
func (s *Service) OwnerBookings(ctx context.Context, p domain.Principal) ([]BookingView, error) {
	if !p.Can(domain.CapViewOwnerBookings) {
		return nil, ErrForbidden
	}
	list, err := s.bookings.ListByOwner(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return s.views(list), nil
}

// Get returns one booking to its traveler or to the hotel owner.
func (s *Service) Get(ctx context.Context, p domain.Principal, id int64) (*BookingView, error) {
	b, err := s.bookings.GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != p.UserID && b.OwnerID != p.UserID {
		return nil, ErrBookingNotFound
	}
	view := newView(*b, s.now())
	return &view, nil
}

// CheckAvailability is the advisory capacity check used for previews.
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut Date) (*Availability, error) {
	if !checkIn.Before(checkOut.Time) {
		return nil, fieldErr("check_out", "Check-out date must be after check-in date")
	}
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	n, err := s.bookings.CountActiveOverlapping(ctx, roomID, checkIn.Time, checkOut.Time)
	if err != nil {
		return nil, err
	}
	return &Availability{
		RoomID:      roomID,
		Available:   n < int64(room.TotalRooms),
		ActiveCount: n,
		TotalRooms:  room.TotalRooms,
	}, nil
}

func (s *Service) views(list []domain.Booking) []BookingView {
	now := s.now()
	out := make([]BookingView, 0, len(list))
	for _, b := range list {
		out = append(out, newView(b, now))
	}
	return out
}

func validateCreate(req CreateBookingRequest) error {
	if req.RoomID <= 0 {
		return fieldErr("room_id", "Room is required")
	}
	if req.HotelID <= 0 {
		return fieldErr("hotel_id", "Hotel is required")
	}
	if req.OwnerID <= 0 {
		return fieldErr("owner_id", "Owner is required")
	}
	if req.CheckIn == nil || req.CheckIn.IsZero() {
		return fieldErr("check_in", "Check-in date is required")
	}
	if req.CheckOut == nil || req.CheckOut.IsZero() {
		return fieldErr("check_out", "Check-out date is required")
	}
	if !req.CheckIn.Before(req.CheckOut.Time) {
		return fieldErr("check_out", "Check-out date must be after check-in date")
	}
	if req.Guests <= 0 {
		return fieldErr("guests", "Number of guests must be greater than 0")
	}
	if !req.TotalAmount.IsPositive() {
		return fieldErr("total_amount", "Total amount must be greater than 0")
	}
	if req.hasPaymentProof() {
		switch {
		case strings.TrimSpace(req.PaymentID) == "":
			return fieldErr("payment_id", "Payment ID is required with payment proof")
		case strings.TrimSpace(req.OrderID) == "":
			return fieldErr("order_id", "Order ID is required with payment proof")
		case strings.TrimSpace(req.Signature) == "":
			return fieldErr("signature", "Signature is required with payment proof")
		}
	}
	if errs := validator.Validate(req); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for f := range errs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		return fieldErr(fields[0], "failed "+errs[fields[0]]+" check")
	}
	return nil
}
