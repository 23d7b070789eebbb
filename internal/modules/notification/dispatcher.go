package notification

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"staylix/internal/domain"
	"staylix/internal/pkg/mq"
)

// LivePusher delivers an event to connected clients and reports how many
// received it.
type LivePusher interface {
	Publish(ev domain.BookingEvent) int
}

// Dispatcher fans booking events out to email, the owner live feed and the
// message broker. Every channel is best-effort; failures are logged only.
type Dispatcher struct {
	mailer    Mailer
	live      LivePusher
	publisher mq.Publisher
	timeout   time.Duration
	log       *logrus.Logger

	wg sync.WaitGroup
}

func NewDispatcher(mailer Mailer, live LivePusher, publisher mq.Publisher, timeout time.Duration, log *logrus.Logger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if publisher == nil {
		publisher = mq.Noop{}
	}
	return &Dispatcher{
		mailer:    mailer,
		live:      live,
		publisher: publisher,
		timeout:   timeout,
		log:       log,
	}
}

// Notify returns immediately.
func (d *Dispatcher) Notify(ev domain.BookingEvent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.dispatch(ev)
	}()
}

// Wait blocks until in-flight notifications finish. Call on shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(ev domain.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	entry := d.log.WithFields(logrus.Fields{
		"event":      ev.Type,
		"booking_id": ev.Booking.ID,
	})

	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Error("notification dispatch panicked")
		}
	}()

	if d.live != nil {
		n := d.live.Publish(ev)
		entry.WithField("delivered", n).Debug("owner feed push")
	}

	if err := d.publisher.PublishJSON(ctx, string(ev.Type), ev); err != nil {
		entry.WithError(err).Warn("publish booking event failed")
	}

	if d.mailer == nil {
		return
	}
	email, ok, err := RenderEmail(ev)
	if err != nil {
		entry.WithError(err).Error("render booking email failed")
		return
	}
	if !ok {
		return
	}
	if err := d.mailer.Send(ctx, email); err != nil {
		entry.WithError(err).Warn("send booking email failed")
	}
}
