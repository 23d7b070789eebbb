package main

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staylix/internal/config"
	"staylix/internal/pkg/lock"
	"staylix/internal/pkg/mq"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewLocker(t *testing.T) {
	cfg := &config.Config{}
	locker, closeLocker, err := newLocker(cfg, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &lock.Local{}, locker)
	closeLocker()

	cfg.Booking.RedisURL = "not a redis url"
	_, _, err = newLocker(cfg, quietLogger())
	assert.Error(t, err)
}

func TestNewPublisher_DefaultsToNoop(t *testing.T) {
	p, err := newPublisher(&config.Config{}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, mq.Noop{}, p)
}

func TestNewMailer_ReturnsConfigErrors(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mail.SMTPHost = "smtp.example.com"

	_, err := newMailer(cfg, quietLogger())
	assert.Error(t, err)
}
