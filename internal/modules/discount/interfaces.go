package discount

import (
	"context"

	"staylix/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, d *domain.Discount) error
	Save(ctx context.Context, d *domain.Discount) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Discount, error)
	GetByCode(ctx context.Context, code string) (*domain.Discount, error)
	List(ctx context.Context) ([]domain.Discount, error)
	ListUsable(ctx context.Context) ([]domain.Discount, error)
	ListByRequester(ctx context.Context, userID int64) ([]domain.Discount, error)
	SetReview(ctx context.Context, id int64, status domain.RequestStatus, active bool, reason string) (*domain.Discount, error)
	ToggleActive(ctx context.Context, id int64) (*domain.Discount, error)
}
