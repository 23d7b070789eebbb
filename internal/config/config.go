package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"

	ProviderRazorpay = "razorpay"
	ProviderSandbox  = "sandbox"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:"staylix.db"`
	DBDebug     bool   `envconfig:"DB_DEBUG" default:"false"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	Payment      PaymentConfig
	Booking      BookingConfig
	Mail         MailConfig
	Notification NotificationConfig
}

type PaymentConfig struct {
	Provider   string        `envconfig:"PAYMENT_PROVIDER" default:"sandbox"`
	KeyID      string        `envconfig:"RAZORPAY_KEY_ID"`
	KeySecret  string        `envconfig:"RAZORPAY_KEY_SECRET"`
	BaseURL    string        `envconfig:"RAZORPAY_BASE_URL" default:"https://api.razorpay.com/v1"`
	Currency   string        `envconfig:"PAYMENT_CURRENCY" default:"INR"`
	Timeout    time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
	SandboxKey string        `envconfig:"PAYMENT_SANDBOX_SECRET" default:"sandbox-secret"`
}

type BookingConfig struct {
	AllowPayLater  bool `envconfig:"BOOKING_ALLOW_PAY_LATER" default:"true"`
	StrictDiscount bool `envconfig:"BOOKING_STRICT_DISCOUNT" default:"false"`
	// RedisURL enables the cross-instance room lock. Empty means in-process only.
	RedisURL string        `envconfig:"REDIS_URL"`
	LockTTL  time.Duration `envconfig:"BOOKING_LOCK_TTL" default:"10s"`
}

type MailConfig struct {
	SMTPHost string `envconfig:"SMTP_HOST"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"465"`
	SMTPUser string `envconfig:"SMTP_USER"`
	SMTPPass string `envconfig:"SMTP_PASS"`
	From     string `envconfig:"MAIL_FROM" default:"no-reply@staylix.local"`
	FromName string `envconfig:"MAIL_FROM_NAME" default:"Staylix Support"`
}

type NotificationConfig struct {
	Timeout      time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`
	AMQPURL      string        `envconfig:"AMQP_URL"`
	AMQPExchange string        `envconfig:"AMQP_EXCHANGE" default:"booking.exchange"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.Payment.Provider = strings.ToLower(strings.TrimSpace(cfg.Payment.Provider))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development" || c.AppEnv == "local"
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Payment.Timeout <= 0 {
		return fmt.Errorf("PAYMENT_TIMEOUT must be > 0")
	}
	if cfg.Notification.Timeout <= 0 {
		return fmt.Errorf("NOTIFY_TIMEOUT must be > 0")
	}
	if cfg.Payment.Currency == "" {
		return fmt.Errorf("PAYMENT_CURRENCY must not be empty")
	}

	switch cfg.Payment.Provider {
	case ProviderRazorpay:
		if cfg.Payment.KeyID == "" || cfg.Payment.KeySecret == "" {
			return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set when PAYMENT_PROVIDER=razorpay")
		}
	case ProviderSandbox:
	default:
		return fmt.Errorf("PAYMENT_PROVIDER must be one of: razorpay, sandbox")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.Payment.Provider == ProviderSandbox {
			return fmt.Errorf("in prod/release PAYMENT_PROVIDER must not be sandbox")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
