package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	infraRepo "github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/apperror"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
)

// VehicleService handles vehicle-related operations
type VehicleService struct {
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo repository.VehicleRepository, customerRepo repository.CustomerRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo, customerRepo: customerRepo}
}

// CreateVehicleInput represents the create vehicle input
type CreateVehicleInput struct {
	CustomerID   uuid.UUID
	Year         int
	Make         string
	Model        string
	VIN          *string
	LicensePlate *string
	Mileage      *int
	Color        *string
}

// CreateVehicle creates a new vehicle for an existing customer
func (s *VehicleService) CreateVehicle(ctx context.Context, input *CreateVehicleInput) (*entity.Vehicle, error) {
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

	vehicle := &entity.Vehicle{
		ShopID:       shopID,
		CustomerID:   input.CustomerID,
		Year:         input.Year,
		Make:         input.Make,
		Model:        input.Model,
		VIN:          input.VIN,
		LicensePlate: input.LicensePlate,
		Mileage:      input.Mileage,
		Color:        input.Color,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

// ListVehicles lists vehicles, optionally filtered to one customer
func (s *VehicleService) ListVehicles(ctx context.Context, params *pagination.PaginationParams, customerID *uuid.UUID, search string) (*pagination.PaginatedResult[entity.Vehicle], error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, params, customerID, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(vehicles, pag), nil
}

// UpdateVehicleInput represents the update vehicle input
type UpdateVehicleInput struct {
	ID           uuid.UUID
	Year         *int
	Make         *string
	Model        *string
	VIN          *string
	LicensePlate *string
	Mileage      *int
	Color        *string
}

// UpdateVehicle updates an existing vehicle
func (s *VehicleService) UpdateVehicle(ctx context.Context, input *UpdateVehicleInput) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}

	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.VIN != nil {
		vehicle.VIN = input.VIN
	}
	if input.LicensePlate != nil {
		vehicle.LicensePlate = input.LicensePlate
	}
	if input.Mileage != nil {
		vehicle.Mileage = input.Mileage
	}
	if input.Color != nil {
		vehicle.Color = input.Color
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// DeleteVehicle soft-deletes a vehicle
func (s *VehicleService) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return apperror.NewNotFoundError("Vehicle")
	}
	return s.vehicleRepo.Delete(ctx, id)
}
