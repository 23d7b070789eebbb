package payment

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type CreateOrderResponse struct {
	Order *Order `json:"order"`
	// KeyID is the public checkout key for the browser widget.
	KeyID string `json:"key_id,omitempty"`
}

type SettleRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type SettleResponse struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}
