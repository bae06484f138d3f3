package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	domainRepo "github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
	"gorm.io/gorm"
)

type estimateRepository struct {
	db *gorm.DB
}

// NewEstimateRepository creates a new estimate repository
func NewEstimateRepository(db *gorm.DB) domainRepo.EstimateRepository {
	return &estimateRepository{db: db}
}

func (r *estimateRepository) Create(ctx context.Context, estimate *entity.Estimate) error {
	return r.db.WithContext(ctx).Create(estimate).Error
}

func (r *estimateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	var estimate entity.Estimate
	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Items").
		First(&estimate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &estimate, err
}

func (r *estimateRepository) Update(ctx context.Context, estimate *entity.Estimate) error {
	return r.db.WithContext(ctx).Save(estimate).Error
}

func (r *estimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(ShopScope(ctx)).Delete(&entity.Estimate{}, "id = ?", id).Error
}

func (r *estimateRepository) List(ctx context.Context, params *pagination.PaginationParams, status *enum.EstimateStatus, customerID *uuid.UUID) ([]entity.Estimate, int64, error) {
	var estimates []entity.Estimate
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Estimate{}).Scopes(ShopScope(ctx))

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Customer").Preload("Vehicle").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&estimates).Error

	return estimates, total, err
}

// NextNumber counts all estimates ever created for the shop, including
// soft-deleted ones, so references are never reused.
func (r *estimateRepository) NextNumber(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Estimate{}).
		Scopes(ShopScope(ctx)).Count(&count).Error
	return count + 1, err
}

func (r *estimateRepository) AddItem(ctx context.Context, item *entity.EstimateItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *estimateRepository) GetItem(ctx context.Context, id uuid.UUID) (*entity.EstimateItem, error) {
	var item entity.EstimateItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *estimateRepository) UpdateItem(ctx context.Context, item *entity.EstimateItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *estimateRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.EstimateItem{}, "id = ?", id).Error
}

func (r *estimateRepository) ListItems(ctx context.Context, estimateID uuid.UUID) ([]entity.EstimateItem, error) {
	var items []entity.EstimateItem
	err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
