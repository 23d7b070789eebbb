package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Currency  string
	Timeout   time.Duration
}

// RazorpayClient creates orders over the REST API and verifies checkout
// signatures with the key secret.
type RazorpayClient struct {
	cfg  RazorpayConfig
	http *http.Client
	log  *logrus.Logger
}

func NewRazorpayClient(cfg RazorpayConfig, log *logrus.Logger) (*RazorpayClient, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, ErrNotConfigured
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com/v1"
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RazorpayClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}, nil
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, amount decimal.Decimal) (*Order, error) {
	minor := ToMinorUnits(amount)
	if minor <= 0 {
		return nil, ErrInvalidAmount
	}

	body, err := json.Marshal(map[string]any{
		"amount":   minor,
		"currency": c.cfg.Currency,
		"receipt":  "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20],
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrGateway, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		desc := gjson.GetBytes(raw, "error.description").String()
		c.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"code":   gjson.GetBytes(raw, "error.code").String(),
		}).Warn("razorpay order creation rejected")
		if desc == "" {
			desc = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrGateway, desc)
	}

	parsed := gjson.ParseBytes(raw)
	order := &Order{
		ID:       parsed.Get("id").String(),
		Amount:   parsed.Get("amount").Int(),
		Currency: parsed.Get("currency").String(),
		Receipt:  parsed.Get("receipt").String(),
		Status:   parsed.Get("status").String(),
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order id missing in response", ErrGateway)
	}
	return order, nil
}

func (c *RazorpayClient) VerifyPayment(p Proof) bool {
	return VerifySignature(c.cfg.KeySecret, p.OrderID, p.PaymentID, p.Signature)
}

func (c *RazorpayClient) PublicKey() string { return c.cfg.KeyID }

func (c *RazorpayClient) Currency() string { return c.cfg.Currency }
