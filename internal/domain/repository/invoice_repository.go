package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, params *pagination.PaginationParams, status *enum.InvoiceStatus) ([]entity.Invoice, int64, error)
	// NextNumber returns the next sequential invoice number for the shop.
	NextNumber(ctx context.Context) (int64, error)

	AddPayment(ctx context.Context, payment *entity.Payment) error
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
}
