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
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
	"go.uber.org/zap"
)

// EstimateService handles priced proposals and their conversion into jobs
type EstimateService struct {
	estimateRepo repository.EstimateRepository
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	settings     *SettingsService
	logger       *zap.Logger
}

// NewEstimateService creates a new estimate service
func NewEstimateService(
	estimateRepo repository.EstimateRepository,
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	settings *SettingsService,
	logger *zap.Logger,
) *EstimateService {
	return &EstimateService{
		estimateRepo: estimateRepo,
		jobRepo:      jobRepo,
		customerRepo: customerRepo,
		settings:     settings,
		logger:       logger,
	}
}

// CreateEstimateInput represents the create estimate input
type CreateEstimateInput struct {
	CustomerID uuid.UUID
	VehicleID  *uuid.UUID
	Note       *string
}

// CreateEstimate creates a draft estimate
func (s *EstimateService) CreateEstimate(ctx context.Context, input *CreateEstimateInput) (*entity.Estimate, error) {
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

	seq, err := s.estimateRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	estimate := &entity.Estimate{
		ShopID:     shopID,
		CustomerID: input.CustomerID,
		VehicleID:  input.VehicleID,
		Reference:  fmt.Sprintf("EST-%05d", seq),
		Status:     enum.EstimateStatusDraft,
		Note:       input.Note,
	}

	if err := s.estimateRepo.Create(ctx, estimate); err != nil {
		return nil, err
	}

	return estimate, nil
}

// GetEstimate retrieves an estimate by ID
func (s *EstimateService) GetEstimate(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, apperror.NewNotFoundError("Estimate")
	}
	return estimate, nil
}

// ListEstimates lists estimates with optional status and customer filters
func (s *EstimateService) ListEstimates(ctx context.Context, params *pagination.PaginationParams, status *enum.EstimateStatus, customerID *uuid.UUID) (*pagination.PaginatedResult[entity.Estimate], error) {
	estimates, total, err := s.estimateRepo.List(ctx, params, status, customerID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(estimates, pag), nil
}

// AddItem appends a line item to a draft estimate and reprices it
func (s *EstimateService) AddItem(ctx context.Context, estimateID uuid.UUID, input *LineItemInput) (*entity.Estimate, error) {
	estimate, err := s.editableEstimate(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	item := &entity.EstimateItem{
		EstimateID:  estimate.ID,
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

	if err := s.estimateRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	return s.recalculate(ctx, estimateID)
}

// RemoveItem deletes a line item from a draft estimate and reprices it
func (s *EstimateService) RemoveItem(ctx context.Context, estimateID, itemID uuid.UUID) (*entity.Estimate, error) {
	if _, err := s.editableEstimate(ctx, estimateID); err != nil {
		return nil, err
	}

	item, err := s.estimateRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.EstimateID != estimateID {
		return nil, apperror.NewNotFoundError("Line item")
	}

	if err := s.estimateRepo.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}

	return s.recalculate(ctx, estimateID)
}

// Send marks a draft estimate as sent to the customer
func (s *EstimateService) Send(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	estimate, err := s.GetEstimate(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status != enum.EstimateStatusDraft {
		return nil, apperror.NewConflictError("Only draft estimates can be sent")
	}

	estimate.Status = enum.EstimateStatusSent
	if err := s.estimateRepo.Update(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

// Decline marks a sent estimate as declined
func (s *EstimateService) Decline(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	estimate, err := s.GetEstimate(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status == enum.EstimateStatusApproved {
		return nil, apperror.NewConflictError("Approved estimates cannot be declined")
	}

	estimate.Status = enum.EstimateStatusDeclined
	if err := s.estimateRepo.Update(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

// Approve marks an estimate approved and converts it into a job carrying
// the same line items. The new job is repriced under current settings
// rather than inheriting the estimate's snapshot.
func (s *EstimateService) Approve(ctx context.Context, id uuid.UUID, vehicleID *uuid.UUID) (*entity.Job, error) {
	estimate, err := s.GetEstimate(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status == enum.EstimateStatusApproved {
		return nil, apperror.NewConflictError("Estimate is already approved")
	}
	if estimate.Status == enum.EstimateStatusDeclined {
		return nil, apperror.NewConflictError("Declined estimates cannot be approved")
	}

	jobVehicleID := estimate.VehicleID
	if vehicleID != nil {
		jobVehicleID = vehicleID
	}
	if jobVehicleID == nil {
		return nil, apperror.NewBadRequestError("A vehicle is required to open a job")
	}

	shopID, _ := infraRepo.GetShopID(ctx)
	seq, err := s.jobRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	job := &entity.Job{
		ShopID:      shopID,
		CustomerID:  estimate.CustomerID,
		VehicleID:   *jobVehicleID,
		Number:      fmt.Sprintf("RO-%05d", seq),
		Status:      enum.JobStatusApproved,
		Description: estimate.Note,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	for _, item := range estimate.Items {
		jobItem := &entity.JobItem{
			JobID:       job.ID,
			Type:        item.Type,
			Description: item.Description,
			Category:    item.Category,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			PartCost:    item.PartCost,
		}
		if err := s.jobRepo.AddItem(ctx, jobItem); err != nil {
			return nil, err
		}
	}

	estimate.Status = enum.EstimateStatusApproved
	if err := s.estimateRepo.Update(ctx, estimate); err != nil {
		return nil, err
	}

	s.logger.Info("estimate approved",
		zap.String("estimate", estimate.Reference),
		zap.String("job", job.Number))

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	job, err = s.jobRepo.GetByID(ctx, job.ID)
	if err != nil || job == nil {
		return job, err
	}
	totals, err := pricing.ComputeTotals(jobLineItems(job.Items), settings.Pricing())
	if err != nil {
		return nil, apperror.NewConfigurationError(err.Error())
	}
	applyTotals(job, totals)
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// DeleteEstimate soft-deletes a draft or declined estimate
func (s *EstimateService) DeleteEstimate(ctx context.Context, id uuid.UUID) error {
	estimate, err := s.GetEstimate(ctx, id)
	if err != nil {
		return err
	}
	if estimate.Status == enum.EstimateStatusApproved {
		return apperror.NewConflictError("Approved estimates cannot be deleted")
	}
	return s.estimateRepo.Delete(ctx, id)
}

func (s *EstimateService) editableEstimate(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	estimate, err := s.GetEstimate(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status != enum.EstimateStatusDraft {
		return nil, apperror.NewConflictError("Only draft estimates can be edited")
	}
	return estimate, nil
}

func (s *EstimateService) recalculate(ctx context.Context, id uuid.UUID) (*entity.Estimate, error) {
	estimate, err := s.GetEstimate(ctx, id)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.ComputeTotals(estimateLineItems(estimate.Items), settings.Pricing())
	if err != nil {
		return nil, apperror.NewConfigurationError(err.Error())
	}

	estimate.Subtotal = pricing.ToCents(totals.Subtotal)
	estimate.TaxAmount = pricing.ToCents(totals.TaxAmount)
	estimate.Total = pricing.ToCents(totals.Total)

	if err := s.estimateRepo.Update(ctx, estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

func estimateLineItems(items []entity.EstimateItem) []pricing.LineItem {
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
