package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/pricing"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	infraRepo "github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/apperror"
	"github.com/tomdro61/shop-pilot-sub001/pkg/daterange"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
	"go.uber.org/zap"
)

// JobService handles repair order operations: lifecycle, line items, and
// pricing recalculation.
type JobService struct {
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
	settings     *SettingsService
	logger       *zap.Logger
}

// NewJobService creates a new job service
func NewJobService(
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	settings *SettingsService,
	logger *zap.Logger,
) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		settings:     settings,
		logger:       logger,
	}
}

// CreateJobInput represents the create job input
type CreateJobInput struct {
	CustomerID  uuid.UUID
	VehicleID   uuid.UUID
	Description *string
}

// CreateJob opens a new repair order in intake status
func (s *JobService) CreateJob(ctx context.Context, input *CreateJobInput) (*entity.Job, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	if vehicle.CustomerID != input.CustomerID {
		return nil, apperror.NewBadRequestError("Vehicle does not belong to customer")
	}

	seq, err := s.jobRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	job := &entity.Job{
		ShopID:      shopID,
		CustomerID:  input.CustomerID,
		VehicleID:   input.VehicleID,
		Number:      fmt.Sprintf("RO-%05d", seq),
		Status:      enum.JobStatusIntake,
		Description: input.Description,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// GetJob retrieves a job with its customer, vehicle, and line items
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	return job, nil
}

// ListJobs lists jobs with filters
func (s *JobService) ListJobs(ctx context.Context, params *repository.JobFilterParams) (*pagination.PaginatedResult[entity.Job], error) {
	jobs, total, err := s.jobRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(jobs, pag), nil
}

// UpdateJobStatus advances a job through its lifecycle. Completing a job
// stamps the completion date in the shop timezone; reopening clears it.
// Moving backward past completed is allowed for correction.
func (s *JobService) UpdateJobStatus(ctx context.Context, id uuid.UUID, status enum.JobStatus) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}

	if status < enum.JobStatusIntake || status > enum.JobStatusPaid {
		return nil, apperror.NewBadRequestError("Invalid job status")
	}

	if status >= enum.JobStatusCompleted && job.CompletedAt == nil {
		today := daterange.Today()
		job.CompletedAt = &today
	}
	if status < enum.JobStatusCompleted {
		job.CompletedAt = nil
	}
	job.Status = status

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// UpdateJob updates a job's editable fields
func (s *JobService) UpdateJob(ctx context.Context, id uuid.UUID, description *string) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}

	if description != nil {
		job.Description = description
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob soft-deletes a job
func (s *JobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return apperror.NewNotFoundError("Job")
	}
	if job.Status >= enum.JobStatusInvoiced {
		return apperror.NewConflictError("Invoiced jobs cannot be deleted")
	}
	return s.jobRepo.Delete(ctx, id)
}

// LineItemInput represents a line item create or update
type LineItemInput struct {
	Type        enum.LineItemType
	Description string
	Category    *string
	Quantity    float64
	UnitCost    float64
	PartCost    *float64
}

func (in *LineItemInput) validate() error {
	var fields []apperror.FieldError
	if !in.Type.IsValid() {
		fields = append(fields, apperror.FieldError{Field: "type", Message: "must be labor or part"})
	}
	if in.Description == "" {
		fields = append(fields, apperror.FieldError{Field: "description", Message: "is required"})
	}
	if in.Quantity <= 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "must be greater than zero"})
	}
	if in.UnitCost < 0 {
		fields = append(fields, apperror.FieldError{Field: "unit_cost", Message: "must not be negative"})
	}
	if in.PartCost != nil && *in.PartCost < 0 {
		fields = append(fields, apperror.FieldError{Field: "part_cost", Message: "must not be negative"})
	}
	if in.PartCost != nil && in.Type != enum.LineItemPart {
		fields = append(fields, apperror.FieldError{Field: "part_cost", Message: "only applies to parts"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// AddItem appends a line item to a job and reprices it
func (s *JobService) AddItem(ctx context.Context, jobID uuid.UUID, input *LineItemInput) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	item := &entity.JobItem{
		JobID:       jobID,
		Type:        input.Type,
		Description: input.Description,
		Category:    input.Category,
		Quantity:    input.Quantity,
		UnitCost:    pricing.ToCents(decimal.NewFromFloat(input.UnitCost)),
	}
	if input.PartCost != nil {
		cost := pricing.ToCents(decimal.NewFromFloat(*input.PartCost))
		item.PartCost = &cost
	}

	if err := s.jobRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	return s.Recalculate(ctx, jobID)
}

// UpdateItem edits a line item and reprices the job
func (s *JobService) UpdateItem(ctx context.Context, jobID, itemID uuid.UUID, input *LineItemInput) (*entity.Job, error) {
	item, err := s.jobRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.JobID != jobID {
		return nil, apperror.NewNotFoundError("Line item")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	item.Type = input.Type
	item.Description = input.Description
	item.Category = input.Category
	item.Quantity = input.Quantity
	item.UnitCost = pricing.ToCents(decimal.NewFromFloat(input.UnitCost))
	item.PartCost = nil
	if input.PartCost != nil {
		cost := pricing.ToCents(decimal.NewFromFloat(*input.PartCost))
		item.PartCost = &cost
	}

	if err := s.jobRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return s.Recalculate(ctx, jobID)
}

// RemoveItem deletes a line item and reprices the job
func (s *JobService) RemoveItem(ctx context.Context, jobID, itemID uuid.UUID) (*entity.Job, error) {
	item, err := s.jobRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.JobID != jobID {
		return nil, apperror.NewNotFoundError("Line item")
	}

	if err := s.jobRepo.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}

	return s.Recalculate(ctx, jobID)
}

// Recalculate reprices a job from its current line items under the shop's
// current settings and persists the snapshot.
func (s *JobService) Recalculate(ctx context.Context, jobID uuid.UUID) (*entity.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.ComputeTotals(jobLineItems(job.Items), settings.Pricing())
	if err != nil {
		return nil, apperror.NewConfigurationError(err.Error())
	}

	applyTotals(job, totals)

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Debug("job repriced",
		zap.String("job", job.Number),
		zap.Int64("total_cents", job.Total))
	return job, nil
}

// jobLineItems converts persisted items to the pricing engine's form.
// Stored cents become exact decimals so repricing never compounds rounding.
func jobLineItems(items []entity.JobItem) []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		li := pricing.LineItem{
			Type:     item.Type,
			Quantity: decimal.NewFromFloat(item.Quantity),
			UnitCost: pricing.FromCents(item.UnitCost),
		}
		if item.Category != nil {
			li.Category = *item.Category
		}
		if item.PartCost != nil {
			li.Cost = pricing.FromCents(*item.PartCost)
		}
		out = append(out, li)
	}
	return out
}

// applyTotals stores a pricing result on the job as a cents snapshot,
// preserving the nil-ness of disabled fees.
func applyTotals(job *entity.Job, t pricing.Totals) {
	job.LaborSubtotal = pricing.ToCents(t.LaborSubtotal)
	job.PartsSubtotal = pricing.ToCents(t.PartsSubtotal)
	job.Subtotal = pricing.ToCents(t.Subtotal)
	job.TaxAmount = pricing.ToCents(t.TaxAmount)
	job.Total = pricing.ToCents(t.Total)

	job.ShopSuppliesFee = nil
	if t.ShopSuppliesFee != nil {
		fee := pricing.ToCents(*t.ShopSuppliesFee)
		job.ShopSuppliesFee = &fee
	}
	job.HazmatFee = nil
	if t.HazmatFee != nil {
		fee := pricing.ToCents(*t.HazmatFee)
		job.HazmatFee = &fee
	}
}
