package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staylix/internal/domain"
	"staylix/internal/pkg/lock"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db     *gorm.DB
	locker lock.Locker
}

// NewBookingRepository uses an in-process room lock when locker is nil.
func NewBookingRepository(db *gorm.DB, locker lock.Locker) *BookingRepository {
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &BookingRepository{db: db, locker: locker}
}

// BookingTx is the set of operations that must commit together with a new
// booking.
type BookingTx interface {
	LockRoom(ctx context.Context, roomID int64) (*domain.Room, error)
	CountActiveOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error)
	FindDiscountByCode(ctx context.Context, code string) (*domain.Discount, error)
	ConsumeDiscount(ctx context.Context, discountID int64) (bool, error)
	CreateBooking(ctx context.Context, b *domain.Booking) error
}

type bookingTx struct {
	tx *gorm.DB
}

func (t *bookingTx) LockRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	var room domain.Room
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, roomID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (t *bookingTx) CountActiveOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	return countActiveOverlapping(t.tx.WithContext(ctx), roomID, checkIn, checkOut)
}

func (t *bookingTx) FindDiscountByCode(ctx context.Context, code string) (*domain.Discount, error) {
	return findDiscountByCode(t.tx.WithContext(ctx), code)
}

func (t *bookingTx) ConsumeDiscount(ctx context.Context, discountID int64) (bool, error) {
	return consumeDiscount(t.tx.WithContext(ctx), discountID)
}

func (t *bookingTx) CreateBooking(ctx context.Context, b *domain.Booking) error {
	return t.tx.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

// WithRoomTx runs fn inside one transaction while holding the room lock.
// Capacity counting and the insert therefore see the same state on every
// backend; on postgres the room row is also locked FOR UPDATE by LockRoom.
func (r *BookingRepository) WithRoomTx(ctx context.Context, roomID int64, fn func(tx BookingTx) error) error {
	unlock, err := r.locker.Lock(ctx, fmt.Sprintf("room:%d", roomID))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return fmt.Errorf("acquire room lock: %w", err)
	}
	defer unlock()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&bookingTx{tx: tx})
	})
	if err != nil && isConflictError(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func (r *BookingRepository) CountActiveOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	return countActiveOverlapping(r.db.WithContext(ctx), roomID, checkIn, checkOut)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// GetWithDetails loads the booking with hotel and room.
func (r *BookingRepository) GetWithDetails(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Preload("Hotel").Preload("Room").First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.listWhere(ctx, "user_id = ?", userID)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return r.listWhere(ctx, "owner_id = ?", ownerID)
}

func (r *BookingRepository) listWhere(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("Room").
		Where(query, args...).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// Cancel flips an active booking to cancelled. It returns false when the
// booking was already cancelled by the time the update ran.
func (r *BookingRepository) Cancel(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND booking_status <> ?", id, domain.BookingCancelled).
		Updates(map[string]any{
			"booking_status": domain.BookingCancelled,
			"cancelled_at":   at,
		})
	if res.Error != nil {
		if isConflictError(res.Error) {
			return false, fmt.Errorf("%w: %v", ErrConflict, res.Error)
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func countActiveOverlapping(db *gorm.DB, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	var n int64
	err := db.Model(&domain.Booking{}).
		Where("room_id = ? AND booking_status IN ?", roomID, domain.ActiveBookingStatuses).
		Where("check_out > ? AND check_in < ?", checkIn, checkOut).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
