package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	domainRepo "github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	"gorm.io/gorm"
)

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) domainRepo.JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Items").
		First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &job, err
}

func (r *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(ShopScope(ctx)).Delete(&entity.Job{}, "id = ?", id).Error
}

func (r *jobRepository) List(ctx context.Context, params *domainRepo.JobFilterParams) ([]entity.Job, int64, error) {
	var jobs []entity.Job
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Job{}).Scopes(ShopScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *params.VehicleID)
	}
	if params.CompletedAt != nil {
		query = query.Where("completed_at >= ? AND completed_at <= ?",
			params.CompletedAt.From, params.CompletedAt.To)
	}
	if params.Search != "" {
		query = query.Where("number ILIKE ? OR description ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Preload("Customer").Preload("Vehicle").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&jobs).Error

	return jobs, total, err
}

// NextNumber counts all jobs ever created for the shop, including
// soft-deleted ones, so numbers are never reused.
func (r *jobRepository) NextNumber(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Job{}).
		Scopes(ShopScope(ctx)).Count(&count).Error
	return count + 1, err
}

func (r *jobRepository) AddItem(ctx context.Context, item *entity.JobItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *jobRepository) GetItem(ctx context.Context, id uuid.UUID) (*entity.JobItem, error) {
	var item entity.JobItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *jobRepository) UpdateItem(ctx context.Context, item *entity.JobItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *jobRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JobItem{}, "id = ?", id).Error
}

func (r *jobRepository) ListItems(ctx context.Context, jobID uuid.UUID) ([]entity.JobItem, error) {
	var items []entity.JobItem
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
