package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Order is a gateway payment order. Amount is in the currency's minor unit.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Proof is what the client returns after paying out of band.
type Proof struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Gateway is the external payment provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (*Order, error)
	// VerifyPayment is pure: no I/O beyond the HMAC.
	VerifyPayment(proof Proof) bool
	// PublicKey is the identifier the browser checkout needs. May be empty.
	PublicKey() string
	Currency() string
}

// ToMinorUnits converts a major-unit amount (rupees, dollars) to an integer
// count of minor units, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
