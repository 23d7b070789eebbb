package discount

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("discount not found")
	ErrDuplicate    = errors.New("discount code already exists")
	ErrNotPending   = errors.New("discount request is not pending")
	ErrInvalidDates = errors.New("start date must be before end date")
	ErrForbidden    = errors.New("forbidden")
)
