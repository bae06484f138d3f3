package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	infraRepo "github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/apperror"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
	"github.com/tomdro61/shop-pilot-sub001/pkg/phone"
	"go.uber.org/zap"
)

// CustomerService handles customer-related operations, including the
// match-or-create flow used by public intake forms.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, logger: logger}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	Type      enum.CustomerType
	Notes     *string
}

// CreateCustomer creates a new customer. The phone number, when present,
// is normalized to E.164 and rejected if it does not parse.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	customer := &entity.Customer{
		ShopID:    shopID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     normalizeEmail(input.Email),
		Type:      input.Type,
		Notes:     input.Notes,
	}
	if customer.Type == "" {
		customer.Type = enum.CustomerRetail
	}

	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		normalized, ok := phone.NormalizeUS(*input.Phone)
		if !ok {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "phone", Message: "must be a valid US phone number"},
			})
		}
		customer.Phone = &normalized
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists the shop's customers with optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID        uuid.UUID
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Type      *enum.CustomerType
	Notes     *string
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		customer.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		customer.Email = normalizeEmail(input.Email)
	}
	if input.Phone != nil {
		if strings.TrimSpace(*input.Phone) == "" {
			customer.Phone = nil
		} else {
			normalized, ok := phone.NormalizeUS(*input.Phone)
			if !ok {
				return nil, apperror.NewValidationError([]apperror.FieldError{
					{Field: "phone", Message: "must be a valid US phone number"},
				})
			}
			customer.Phone = &normalized
		}
	}
	if input.Type != nil {
		customer.Type = *input.Type
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// MatchInput is the contact information submitted through an intake form.
type MatchInput struct {
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	Type      enum.CustomerType
}

// LinkResult reports how an intake submission was linked to a customer
// record. Linked is false only when every lookup and the fallback create
// failed; the caller proceeds without a link rather than failing the
// submission.
type LinkResult struct {
	Linked     bool
	CustomerID uuid.UUID
	// Created is true when no existing record matched and a new one was made.
	Created bool
	// Reason explains an unlinked result, for operator review.
	Reason string
}

// FindOrCreate links intake contact info to a customer record. Matching
// order: email first (case-insensitive), then phone (normalized to E.164),
// then create. Lookup errors fall through to the next strategy instead of
// failing, so a degraded database read never blocks an intake submission.
func (s *CustomerService) FindOrCreate(ctx context.Context, input *MatchInput) LinkResult {
	if email := normalizeEmail(input.Email); email != nil {
		customer, err := s.customerRepo.GetByEmail(ctx, *email)
		if err != nil {
			s.logger.Warn("customer match by email failed", zap.Error(err))
		} else if customer != nil {
			return LinkResult{Linked: true, CustomerID: customer.ID}
		}
	}

	var normalizedPhone *string
	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		if normalized, ok := phone.NormalizeUS(*input.Phone); ok {
			normalizedPhone = &normalized
			customer, err := s.customerRepo.GetByPhone(ctx, normalized)
			if err != nil {
				s.logger.Warn("customer match by phone failed", zap.Error(err))
			} else if customer != nil {
				return LinkResult{Linked: true, CustomerID: customer.ID}
			}
		}
	}

	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return LinkResult{Reason: "shop context missing"}
	}

	customerType := input.Type
	if customerType == "" {
		customerType = enum.CustomerRetail
	}

	// Phone is stored only when it normalized; a malformed number never
	// blocks creation.
	customer := &entity.Customer{
		ShopID:    shopID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     normalizeEmail(input.Email),
		Phone:     normalizedPhone,
		Type:      customerType,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Warn("customer create during intake failed", zap.Error(err))
		return LinkResult{Reason: "create failed: " + err.Error()}
	}

	return LinkResult{Linked: true, CustomerID: customer.ID, Created: true}
}

// normalizeEmail trims whitespace and collapses empty values to nil. Case is
// preserved at rest; matching is case-insensitive at query time.
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
