package repository

import (
	"context"

	"staylix/internal/domain"

	"gorm.io/gorm"
)

// CatalogRepository reads hotels and rooms. Listing management lives
// elsewhere; the booking engine only needs lookups.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *CatalogRepository) CreateRoom(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Omit("Hotel").Create(room).Error
}

func (r *CatalogRepository) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

// GetRoom loads the room with its hotel.
func (r *CatalogRepository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).Preload("Hotel").First(&room, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

// ListRooms returns the rooms of a hotel, cheapest first.
func (r *CatalogRepository) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("price_per_night ASC, id ASC").
		Find(&rooms).Error
	return rooms, err
}
