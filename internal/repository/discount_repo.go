package repository

import (
	"context"
	"fmt"

	"staylix/internal/domain"

	"gorm.io/gorm"
)

type DiscountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) Create(ctx context.Context, d *domain.Discount) error {
	d.Code = domain.NormalizeCode(d.Code)
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("discount %s: %w", d.Code, ErrDuplicate)
		}
		return err
	}
	return nil
}

// Save writes every column. usage_count is left out so an admin edit racing a
// booking never rolls the counter back.
func (r *DiscountRepository) Save(ctx context.Context, d *domain.Discount) error {
	d.Code = domain.NormalizeCode(d.Code)
	err := r.db.WithContext(ctx).Model(d).Select("*").Omit("usage_count", "created_at").Updates(d).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("discount %s: %w", d.Code, ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *DiscountRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Discount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DiscountRepository) GetByID(ctx context.Context, id int64) (*domain.Discount, error) {
	var d domain.Discount
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *DiscountRepository) GetByCode(ctx context.Context, code string) (*domain.Discount, error) {
	return findDiscountByCode(r.db.WithContext(ctx), code)
}

func (r *DiscountRepository) List(ctx context.Context) ([]domain.Discount, error) {
	var out []domain.Discount
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// ListUsable returns approved and active codes. The date window is checked by
// the caller.
func (r *DiscountRepository) ListUsable(ctx context.Context) ([]domain.Discount, error) {
	var out []domain.Discount
	err := r.db.WithContext(ctx).
		Where("request_status = ? AND is_active = ?", domain.RequestApproved, true).
		Order("end_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *DiscountRepository) ListByRequester(ctx context.Context, userID int64) ([]domain.Discount, error) {
	var out []domain.Discount
	err := r.db.WithContext(ctx).
		Where("requested_by = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// SetReview moves a pending request to approved or rejected. It returns
// ErrNotFound when the discount is missing or no longer pending.
func (r *DiscountRepository) SetReview(ctx context.Context, id int64, status domain.RequestStatus, active bool, reason string) (*domain.Discount, error) {
	var out *domain.Discount
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Discount{}).
			Where("id = ? AND request_status = ?", id, domain.RequestPending).
			Updates(map[string]any{
				"request_status":   status,
				"is_active":        active,
				"rejection_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		var d domain.Discount
		if err := tx.First(&d, id).Error; err != nil {
			return err
		}
		out = &d
		return nil
	})
	return out, err
}

func (r *DiscountRepository) ToggleActive(ctx context.Context, id int64) (*domain.Discount, error) {
	res := r.db.WithContext(ctx).Model(&domain.Discount{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func findDiscountByCode(db *gorm.DB, code string) (*domain.Discount, error) {
	var d domain.Discount
	if err := db.Where("code = ?", domain.NormalizeCode(code)).First(&d).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

// consumeDiscount increments usage only while it is below the limit. false
// means another booking took the last use first.
func consumeDiscount(db *gorm.DB, id int64) (bool, error) {
	res := db.Model(&domain.Discount{}).
		Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
