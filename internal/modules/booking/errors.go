package booking

import (
	"errors"
	"fmt"

	"staylix/internal/modules/discount"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrForbidden        = errors.New("forbidden")
	ErrSelfBooking      = errors.New("owners cannot book their own hotel")
	ErrRoomNotFound     = errors.New("room not found")
	ErrNotAvailable     = errors.New("room not available for selected dates")
	ErrPriceMismatch    = errors.New("total amount does not match current room price")
	ErrPaymentRequired  = errors.New("payment is required")
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("not authorized to cancel this booking")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrBusy             = errors.New("booking is being modified concurrently")
)

// FieldError is a client-correctable problem with one request field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }

func (e *FieldError) Unwrap() error { return ErrValidation }

func fieldErr(field, msg string) error { return &FieldError{Field: field, Message: msg} }

// DiscountRejectedError is returned only when strict discounts are enabled.
type DiscountRejectedError struct {
	Cause *discount.RejectionError
}

func (e *DiscountRejectedError) Error() string { return e.Cause.Error() }

func (e *DiscountRejectedError) Unwrap() error { return e.Cause }
