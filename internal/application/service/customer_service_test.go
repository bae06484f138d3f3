package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	infraRepo "github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
	"go.uber.org/zap"
)

// fakeCustomerRepo is an in-memory CustomerRepository for service tests.
type fakeCustomerRepo struct {
	customers []*entity.Customer

	emailErr  error
	phoneErr  error
	createErr error
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	for _, c := range f.customers {
		if c.Email != nil && strings.EqualFold(*c.Email, email) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	if f.phoneErr != nil {
		return nil, f.phoneErr
	}
	for _, c := range f.customers {
		if c.Phone != nil && *c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }

func (f *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	out := make([]entity.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func strPtr(s string) *string { return &s }

func shopCtx(shopID uuid.UUID) context.Context {
	return infraRepo.WithShop(context.Background(), shopID)
}

func TestFindOrCreateMatchesEmailCaseInsensitive(t *testing.T) {
	shopID := uuid.New()
	existing := &entity.Customer{
		ID:     uuid.New(),
		ShopID: shopID,
		Email:  strPtr("Jane.Doe@Example.com"),
	}
	repo := &fakeCustomerRepo{customers: []*entity.Customer{existing}}
	svc := NewCustomerService(repo, zap.NewNop())

	result := svc.FindOrCreate(shopCtx(shopID), &MatchInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     strPtr("jane.doe@example.com"),
	})

	assert.True(t, result.Linked)
	assert.False(t, result.Created)
	assert.Equal(t, existing.ID, result.CustomerID)
	assert.Len(t, repo.customers, 1)
}

func TestFindOrCreateMatchesPhoneAcrossFormats(t *testing.T) {
	shopID := uuid.New()
	existing := &entity.Customer{
		ID:     uuid.New(),
		ShopID: shopID,
		Phone:  strPtr("+15551234567"),
	}
	repo := &fakeCustomerRepo{customers: []*entity.Customer{existing}}
	svc := NewCustomerService(repo, zap.NewNop())

	result := svc.FindOrCreate(shopCtx(shopID), &MatchInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     strPtr("(555) 123-4567"),
	})

	assert.True(t, result.Linked)
	assert.False(t, result.Created)
	assert.Equal(t, existing.ID, result.CustomerID)
}

func TestFindOrCreateEmailTakesPrecedenceOverPhone(t *testing.T) {
	shopID := uuid.New()
	byEmail := &entity.Customer{ID: uuid.New(), ShopID: shopID, Email: strPtr("jane@example.com")}
	byPhone := &entity.Customer{ID: uuid.New(), ShopID: shopID, Phone: strPtr("+15551234567")}
	repo := &fakeCustomerRepo{customers: []*entity.Customer{byPhone, byEmail}}
	svc := NewCustomerService(repo, zap.NewNop())

	result := svc.FindOrCreate(shopCtx(shopID), &MatchInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     strPtr("jane@example.com"),
		Phone:     strPtr("555-123-4567"),
	})

	assert.True(t, result.Linked)
	assert.Equal(t, byEmail.ID, result.CustomerID)
}

func TestFindOrCreateCreatesWhenNoMatch(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeCustomerRepo{}
	svc := NewCustomerService(repo, zap.NewNop())

	result := svc.FindOrCreate(shopCtx(shopID), &MatchInput{
		FirstName: "New",
		LastName:  "Customer",
		Email:     strPtr("new@example.com"),
		Phone:     strPtr("555-987-6543"),
		Type:      enum.CustomerParking,
	})

	assert.True(t, result.Linked)
	assert.True(t, result.Created)
	require.Len(t, repo.customers, 1)

	created := repo.customers[0]
	assert.Equal(t, shopID, created.ShopID)
	assert.Equal(t, enum.CustomerParking, created.Type)
	require.NotNil(t, created.Phone)
	assert.Equal(t, "+15559876543", *created.Phone)
}

func TestFindOrCreateStoresNilPhoneWhenUnparseable(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeCustomerRepo{}
	svc := NewCustomerService(repo, zap.NewNop())

	result := svc.FindOrCreate(shopCtx(shopID), &MatchInput{
		FirstName: "Overseas",
		LastName:  "Caller",
		Phone:     strPtr("+44 20 7946 0958"),
	})

	assert.True(t, result.Linked)
	assert.True(t, result.Created)
	require.Len(t, repo.customers, 1)
	assert.Nil(t, repo.customers[0].Phone)
}

func TestFindOrCreateFallsThroughLookupErrors(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeCustomerRepo{
		emailErr: errors.New("read replica down"),
		phoneErr: errors.New("read replica down"),
	}
	svc := NewCustomerService(repo, zap.NewNop())

	result := svc.FindOrCreate(shopCtx(shopID), &MatchInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     strPtr("jane@example.com"),
		Phone:     strPtr("555-123-4567"),
	})

	// Lookups failed but the create still went through.
	assert.True(t, result.Linked)
	assert.True(t, result.Created)
}

func TestFindOrCreateSoftFailsWhenCreateFails(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeCustomerRepo{createErr: errors.New("insert failed")}
	svc := NewCustomerService(repo, zap.NewNop())

	result := svc.FindOrCreate(shopCtx(shopID), &MatchInput{
		FirstName: "Jane",
		LastName:  "Doe",
	})

	assert.False(t, result.Linked)
	assert.False(t, result.Created)
	assert.NotEmpty(t, result.Reason)
}

func TestFindOrCreateRequiresShopContext(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := NewCustomerService(repo, zap.NewNop())

	result := svc.FindOrCreate(context.Background(), &MatchInput{
		FirstName: "Jane",
		LastName:  "Doe",
	})

	assert.False(t, result.Linked)
	assert.Empty(t, repo.customers)
}

func TestCreateCustomerNormalizesPhone(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeCustomerRepo{}
	svc := NewCustomerService(repo, zap.NewNop())

	customer, err := svc.CreateCustomer(shopCtx(shopID), &CreateCustomerInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     strPtr("1-555-123-4567"),
	})

	require.NoError(t, err)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "+15551234567", *customer.Phone)
	assert.Equal(t, enum.CustomerRetail, customer.Type)
}

func TestCreateCustomerRejectsBadPhone(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeCustomerRepo{}
	svc := NewCustomerService(repo, zap.NewNop())

	_, err := svc.CreateCustomer(shopCtx(shopID), &CreateCustomerInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     strPtr("12345"),
	})

	require.Error(t, err)
	assert.Empty(t, repo.customers)
}
