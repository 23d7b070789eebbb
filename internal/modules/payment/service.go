package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Service struct {
	gateway Gateway
	log     *logrus.Logger
}

func NewService(gateway Gateway, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{gateway: gateway, log: log}
}

// CreatePaymentOrder asks the gateway for an order covering amount. No local
// state is written.
func (s *Service) CreatePaymentOrder(ctx context.Context, userID int64, amount decimal.Decimal) (*Order, error) {
	if !amount.IsPositive() || ToMinorUnits(amount) <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.gateway.CreateOrder(ctx, amount)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  amount.String(),
		}).Error("payment order creation failed")
		return nil, fmt.Errorf("create payment order: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	}).Info("payment order created")
	return order, nil
}

func (s *Service) Gateway() Gateway {
	return s.gateway
}
