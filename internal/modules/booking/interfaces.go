package booking

import (
	"context"
	"time"

	"staylix/internal/domain"
	"staylix/internal/repository"
)

type BookingRepository interface {
	WithRoomTx(ctx context.Context, roomID int64, fn func(tx repository.BookingTx) error) error
	CountActiveOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithDetails(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64, at time.Time) (bool, error)
}

type RoomCatalog interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// Notifier is fire-and-forget. Implementations must not block the caller.
type Notifier interface {
	Notify(ev domain.BookingEvent)
}

type noopNotifier struct{}

func (noopNotifier) Notify(domain.BookingEvent) {}
