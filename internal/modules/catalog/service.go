package catalog

import (
	"context"
	"errors"

	"staylix/internal/domain"
	"staylix/internal/repository"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	GetHotel(ctx context.Context, id int64) (*domain.Hotel, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error)
}

// Service exposes read-only hotel and room lookups. Listing management is
// done by owners elsewhere.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type HotelDetails struct {
	Hotel *domain.Hotel `json:"hotel"`
	Rooms []domain.Room `json:"rooms"`
}

func (s *Service) GetHotel(ctx context.Context, id int64) (*HotelDetails, error) {
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if !h.IsActive {
		return nil, ErrNotFound
	}
	rooms, err := s.repo.ListRooms(ctx, id)
	if err != nil {
		return nil, err
	}
	return &HotelDetails{Hotel: h, Rooms: rooms}, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if room.Hotel != nil && !room.Hotel.IsActive {
		return nil, ErrNotFound
	}
	return room, nil
}

func RoomTypes() []domain.RoomType {
	return []domain.RoomType{domain.RoomSingle, domain.RoomDouble, domain.RoomDeluxe, domain.RoomSuite}
}

func mapErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
