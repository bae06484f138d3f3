package service

import (
	"context"
	"fmt"
	"time"

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

// InvoiceService handles billing: issuing invoices from completed jobs and
// recording payments.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	jobRepo     repository.JobRepository
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, jobRepo repository.JobRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, jobRepo: jobRepo, logger: logger}
}

// CreateInvoice issues an invoice for a completed job, snapshotting the
// job's totals. A job can carry at most one invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, jobID uuid.UUID, dueOn *time.Time) (*entity.Invoice, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Job")
	}
	if job.Status < enum.JobStatusCompleted {
		return nil, apperror.NewConflictError("Only completed jobs can be invoiced")
	}

	existing, err := s.invoiceRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Job already has an invoice")
	}

	seq, err := s.invoiceRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		ShopID:          shopID,
		JobID:           jobID,
		Number:          fmt.Sprintf("INV-%05d", seq),
		Status:          enum.InvoiceDraft,
		IssuedOn:        daterange.Today(),
		DueOn:           dueOn,
		Subtotal:        job.Subtotal,
		ShopSuppliesFee: job.ShopSuppliesFee,
		HazmatFee:       job.HazmatFee,
		TaxAmount:       job.TaxAmount,
		Total:           job.Total,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if job.Status < enum.JobStatusInvoiced {
		job.Status = enum.JobStatusInvoiced
		if err := s.jobRepo.Update(ctx, job); err != nil {
			return nil, err
		}
	}

	s.logger.Info("invoice issued",
		zap.String("invoice", invoice.Number),
		zap.String("job", job.Number))
	return invoice, nil
}

// GetInvoice retrieves an invoice with its job and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with an optional status filter
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.PaginationParams, status *enum.InvoiceStatus) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// Send marks a draft invoice as sent
func (s *InvoiceService) Send(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != enum.InvoiceDraft {
		return nil, apperror.NewConflictError("Only draft invoices can be sent")
	}

	invoice.Status = enum.InvoiceSent
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Void voids an unpaid invoice and reopens its job for corrections
func (s *InvoiceService) Void(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == enum.InvoicePaid {
		return nil, apperror.NewConflictError("Paid invoices cannot be voided")
	}
	if invoice.AmountPaid() > 0 {
		return nil, apperror.NewConflictError("Invoices with payments cannot be voided")
	}

	invoice.Status = enum.InvoiceVoid
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, invoice.JobID)
	if err == nil && job != nil && job.Status == enum.JobStatusInvoiced {
		job.Status = enum.JobStatusCompleted
		if err := s.jobRepo.Update(ctx, job); err != nil {
			return nil, err
		}
	}

	return invoice, nil
}

// RecordPaymentInput represents a payment against an invoice
type RecordPaymentInput struct {
	InvoiceID  uuid.UUID
	Amount     float64
	Method     enum.PaymentMethod
	Reference  *string
	ReceivedAt *time.Time
}

// RecordPayment records money received against an invoice. When payments
// cover the invoice total, the invoice and its job are marked paid.
func (s *InvoiceService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == enum.InvoiceVoid {
		return nil, apperror.NewConflictError("Void invoices cannot take payments")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "method", Message: "must be card, cash, check, or terminal"},
		})
	}
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "must be greater than zero"},
		})
	}

	amountCents := pricing.ToCents(decimal.NewFromFloat(input.Amount))
	if invoice.AmountPaid()+amountCents > invoice.Total {
		return nil, apperror.NewConflictError("Payment exceeds invoice balance")
	}

	receivedAt := time.Now()
	if input.ReceivedAt != nil {
		receivedAt = *input.ReceivedAt
	}

	payment := &entity.Payment{
		InvoiceID:  invoice.ID,
		Amount:     amountCents,
		Method:     input.Method,
		Reference:  input.Reference,
		ReceivedAt: receivedAt,
	}
	if err := s.invoiceRepo.AddPayment(ctx, payment); err != nil {
		return nil, err
	}

	invoice.Payments = append(invoice.Payments, *payment)
	if invoice.AmountPaid() >= invoice.Total {
		invoice.Status = enum.InvoicePaid
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return nil, err
		}

		job, err := s.jobRepo.GetByID(ctx, invoice.JobID)
		if err == nil && job != nil && job.Status < enum.JobStatusPaid {
			job.Status = enum.JobStatusPaid
			if err := s.jobRepo.Update(ctx, job); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("payment recorded",
		zap.String("invoice", invoice.Number),
		zap.Int64("amount_cents", amountCents),
		zap.String("method", string(input.Method)))
	return invoice, nil
}
