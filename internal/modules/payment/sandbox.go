package payment

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sandbox is an in-memory gateway for development and tests. It issues real
// HMAC signatures so the booking flow runs unchanged against it.
type Sandbox struct {
	secret   string
	currency string

	mu sync.Mutex
	// open holds orders that were created but not settled yet.
	open map[string]struct{}
}

func NewSandbox(secret, currency string) *Sandbox {
	if currency == "" {
		currency = "INR"
	}
	return &Sandbox{secret: secret, currency: currency, open: make(map[string]struct{})}
}

func (s *Sandbox) CreateOrder(_ context.Context, amount decimal.Decimal) (*Order, error) {
	minor := ToMinorUnits(amount)
	if minor <= 0 {
		return nil, ErrInvalidAmount
	}
	o := &Order{
		ID:       "order_" + compactID(),
		Amount:   minor,
		Currency: s.currency,
		Status:   "created",
	}
	s.mu.Lock()
	s.open[o.ID] = struct{}{}
	s.mu.Unlock()
	return o, nil
}

// Settle simulates the customer paying an order and returns the proof the
// checkout widget would hand back. An order settles once.
func (s *Sandbox) Settle(orderID string) (Proof, error) {
	s.mu.Lock()
	_, ok := s.open[orderID]
	delete(s.open, orderID)
	s.mu.Unlock()
	if !ok {
		return Proof{}, ErrUnknownOrder
	}
	paymentID := "pay_" + compactID()
	return Proof{
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: Sign(s.secret, orderID, paymentID),
	}, nil
}

func (s *Sandbox) VerifyPayment(p Proof) bool {
	return VerifySignature(s.secret, p.OrderID, p.PaymentID, p.Signature)
}

func (s *Sandbox) PublicKey() string { return "sandbox" }

func (s *Sandbox) Currency() string { return s.currency }

func compactID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}
