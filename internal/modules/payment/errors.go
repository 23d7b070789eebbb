package payment

import "errors"

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrGateway       = errors.New("payment gateway error")
	ErrUnknownOrder  = errors.New("unknown payment order")
	ErrNotConfigured = errors.New("payment gateway is not configured")
)
