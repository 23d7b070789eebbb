package discount

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"staylix/internal/domain"
	"staylix/internal/repository"
)

const defaultRejectionReason = "No reason provided"

var hundred = decimal.NewFromInt(100)

// Service is the discount registry: admin CRUD, owner requests with admin
// review, and side-effect free validation for price previews.
type Service struct {
	repo Repository
	log  *logrus.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Create stores an approved discount on behalf of an admin.
func (s *Service) Create(ctx context.Context, adminID int64, req UpsertRequest) (*domain.Discount, error) {
	d, err := newFromRequest(req)
	if err != nil {
		return nil, err
	}
	d.CreatedBy = adminID
	d.RequestStatus = domain.RequestApproved
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, mapRepoErr(err)
	}
	s.log.WithFields(logrus.Fields{"discount_id": d.ID, "code": d.Code, "admin_id": adminID}).Info("discount created")
	return d, nil
}

// Request stores an inactive, pending discount proposed by an owner.
func (s *Service) Request(ctx context.Context, ownerID int64, req UpsertRequest) (*domain.Discount, error) {
	d, err := newFromRequest(req)
	if err != nil {
		return nil, err
	}
	d.CreatedBy = ownerID
	d.RequestedBy = &ownerID
	d.RequestStatus = domain.RequestPending
	d.IsActive = false

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, mapRepoErr(err)
	}
	s.log.WithFields(logrus.Fields{"discount_id": d.ID, "code": d.Code, "owner_id": ownerID}).Info("discount requested")
	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) (*domain.Discount, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if req.Code != nil {
		d.Code = domain.NormalizeCode(*req.Code)
	}
	if req.Description != nil {
		d.Description = strings.TrimSpace(*req.Description)
	}
	if req.DiscountType != nil {
		d.DiscountType = domain.DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		d.DiscountValue = *req.DiscountValue
	}
	if req.MinBookingAmount != nil {
		d.MinBookingAmount = *req.MinBookingAmount
	}
	if req.ApplicableHotels != nil {
		d.ApplicableHotels = req.ApplicableHotels
	}
	if req.StartDate != nil {
		d.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		d.EndDate = req.EndDate.UTC()
	}
	if req.UsageLimit != nil {
		d.UsageLimit = req.UsageLimit
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := validateDiscount(d); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, mapRepoErr(err)
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return mapRepoErr(s.repo.Delete(ctx, id))
}

func (s *Service) Toggle(ctx context.Context, id int64) (*domain.Discount, error) {
	d, err := s.repo.ToggleActive(ctx, id)
	return d, mapRepoErr(err)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Discount, error) {
	d, err := s.repo.GetByID(ctx, id)
	return d, mapRepoErr(err)
}

func (s *Service) List(ctx context.Context) ([]domain.Discount, error) {
	return s.repo.List(ctx)
}

// ListActive returns approved, active codes whose window contains now.
func (s *Service) ListActive(ctx context.Context) ([]domain.Discount, error) {
	all, err := s.repo.ListUsable(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]domain.Discount, 0, len(all))
	for _, d := range all {
		if d.InWindow(now) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) OwnerRequests(ctx context.Context, ownerID int64) ([]domain.Discount, error) {
	return s.repo.ListByRequester(ctx, ownerID)
}

func (s *Service) Approve(ctx context.Context, id int64) (*domain.Discount, error) {
	return s.review(ctx, id, domain.RequestApproved, true, "")
}

func (s *Service) Reject(ctx context.Context, id int64, reason string) (*domain.Discount, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultRejectionReason
	}
	return s.review(ctx, id, domain.RequestRejected, false, reason)
}

func (s *Service) review(ctx context.Context, id int64, status domain.RequestStatus, active bool, reason string) (*domain.Discount, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, mapRepoErr(err)
	}
	d, err := s.repo.SetReview(ctx, id, status, active, reason)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotPending
		}
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"discount_id": id, "status": status}).Info("discount request reviewed")
	return d, nil
}

// Validate previews a code against an amount. It never consumes usage.
func (s *Service) Validate(ctx context.Context, req ValidateRequest) (*Preview, error) {
	if strings.TrimSpace(req.Code) == "" || !req.BookingAmount.IsPositive() {
		return nil, fmt.Errorf("%w: code and booking amount are required", ErrValidation)
	}

	d, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			d = nil
		} else {
			return nil, err
		}
	}

	res, err := Evaluate(d, req.BookingAmount, req.HotelID, s.now())
	if err != nil {
		return nil, err
	}
	return &Preview{
		Code:           d.Code,
		Description:    d.Description,
		DiscountType:   d.DiscountType,
		DiscountValue:  d.DiscountValue,
		DiscountAmount: res.DiscountAmount,
		FinalAmount:    res.FinalAmount,
	}, nil
}

func newFromRequest(req UpsertRequest) (*domain.Discount, error) {
	if req.Code == nil || strings.TrimSpace(*req.Code) == "" ||
		req.Description == nil || strings.TrimSpace(*req.Description) == "" ||
		req.DiscountValue == nil || req.StartDate == nil || req.EndDate == nil {
		return nil, fmt.Errorf("%w: code, description, discount_value, start_date and end_date are required", ErrValidation)
	}

	d := &domain.Discount{
		Code:             domain.NormalizeCode(*req.Code),
		Description:      strings.TrimSpace(*req.Description),
		DiscountType:     domain.DiscountPercentage,
		DiscountValue:    *req.DiscountValue,
		MinBookingAmount: decimal.Zero,
		ApplicableHotels: []int64{},
		StartDate:        req.StartDate.UTC(),
		EndDate:          req.EndDate.UTC(),
		UsageLimit:       req.UsageLimit,
		IsActive:         true,
	}
	if req.DiscountType != nil && *req.DiscountType != "" {
		d.DiscountType = domain.DiscountType(*req.DiscountType)
	}
	if req.MinBookingAmount != nil {
		d.MinBookingAmount = *req.MinBookingAmount
	}
	if req.ApplicableHotels != nil {
		d.ApplicableHotels = req.ApplicableHotels
	}

	if err := validateDiscount(d); err != nil {
		return nil, err
	}
	return d, nil
}

func validateDiscount(d *domain.Discount) error {
	if d.Code == "" || d.Description == "" {
		return fmt.Errorf("%w: code and description must not be empty", ErrValidation)
	}
	if !d.StartDate.Before(d.EndDate) {
		return ErrInvalidDates
	}
	switch d.DiscountType {
	case domain.DiscountPercentage:
		if !d.DiscountValue.IsPositive() || d.DiscountValue.GreaterThan(hundred) {
			return fmt.Errorf("%w: percentage discount_value must be within (0, 100]", ErrValidation)
		}
	case domain.DiscountFixed:
		if !d.DiscountValue.IsPositive() {
			return fmt.Errorf("%w: fixed discount_value must be greater than 0", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: discount_type must be percentage or fixed", ErrValidation)
	}
	if d.MinBookingAmount.IsNegative() {
		return fmt.Errorf("%w: min_booking_amount must not be negative", ErrValidation)
	}
	if d.UsageLimit != nil && *d.UsageLimit < 1 {
		return fmt.Errorf("%w: usage_limit must be at least 1", ErrValidation)
	}
	return nil
}

func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicate
	default:
		return err
	}
}
