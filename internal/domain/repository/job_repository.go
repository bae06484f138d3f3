package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
)

// JobFilterParams represents filtering options for listing jobs
type JobFilterParams struct {
	Pagination  *pagination.PaginationParams
	Status      *enum.JobStatus
	CustomerID  *uuid.UUID
	VehicleID   *uuid.UUID
	CompletedAt *DateWindow
	Search      string
}

// DateWindow bounds a date column query, inclusive on both ends.
type DateWindow struct {
	From time.Time
	To   time.Time
}

// JobRepository defines the interface for job data operations
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *JobFilterParams) ([]entity.Job, int64, error)
	// NextNumber returns the next sequential job number for the shop.
	NextNumber(ctx context.Context) (int64, error)

	// Line items
	AddItem(ctx context.Context, item *entity.JobItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*entity.JobItem, error)
	UpdateItem(ctx context.Context, item *entity.JobItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, jobID uuid.UUID) ([]entity.JobItem, error)
}

// EstimateRepository defines the interface for estimate data operations
type EstimateRepository interface {
	Create(ctx context.Context, estimate *entity.Estimate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Estimate, error)
	Update(ctx context.Context, estimate *entity.Estimate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, status *enum.EstimateStatus, customerID *uuid.UUID) ([]entity.Estimate, int64, error)
	NextNumber(ctx context.Context) (int64, error)

	AddItem(ctx context.Context, item *entity.EstimateItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*entity.EstimateItem, error)
	UpdateItem(ctx context.Context, item *entity.EstimateItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, estimateID uuid.UUID) ([]entity.EstimateItem, error)
}
