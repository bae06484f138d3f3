package service

import (
	"context"
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
	"github.com/tomdro61/shop-pilot-sub001/pkg/phone"
	"go.uber.org/zap"
)

// ParkingService handles the shop's rentable lot: spots and the public
// reservation intake.
type ParkingService struct {
	parkingRepo repository.ParkingRepository
	customers   *CustomerService
	logger      *zap.Logger
}

// NewParkingService creates a new parking service
func NewParkingService(parkingRepo repository.ParkingRepository, customers *CustomerService, logger *zap.Logger) *ParkingService {
	return &ParkingService{parkingRepo: parkingRepo, customers: customers, logger: logger}
}

// CreateSpotInput represents the create spot input
type CreateSpotInput struct {
	Label       string
	Covered     bool
	MonthlyRate float64
}

// CreateSpot adds a spot to the lot
func (s *ParkingService) CreateSpot(ctx context.Context, input *CreateSpotInput) (*entity.ParkingSpot, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if input.MonthlyRate < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "monthly_rate", Message: "must not be negative"},
		})
	}

	spot := &entity.ParkingSpot{
		ShopID:      shopID,
		Label:       input.Label,
		Covered:     input.Covered,
		MonthlyRate: pricing.ToCents(decimal.NewFromFloat(input.MonthlyRate)),
		Active:      true,
	}
	if err := s.parkingRepo.CreateSpot(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

// GetSpot retrieves a spot by ID
func (s *ParkingService) GetSpot(ctx context.Context, id uuid.UUID) (*entity.ParkingSpot, error) {
	spot, err := s.parkingRepo.GetSpot(ctx, id)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, apperror.NewNotFoundError("Parking spot")
	}
	return spot, nil
}

// ListSpots lists the lot's spots
func (s *ParkingService) ListSpots(ctx context.Context, activeOnly bool) ([]entity.ParkingSpot, error) {
	return s.parkingRepo.ListSpots(ctx, activeOnly)
}

// UpdateSpotInput represents the update spot input
type UpdateSpotInput struct {
	ID          uuid.UUID
	Label       *string
	Covered     *bool
	MonthlyRate *float64
	Active      *bool
}

// UpdateSpot updates a spot's attributes
func (s *ParkingService) UpdateSpot(ctx context.Context, input *UpdateSpotInput) (*entity.ParkingSpot, error) {
	spot, err := s.GetSpot(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Label != nil {
		spot.Label = *input.Label
	}
	if input.Covered != nil {
		spot.Covered = *input.Covered
	}
	if input.MonthlyRate != nil {
		if *input.MonthlyRate < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "monthly_rate", Message: "must not be negative"},
			})
		}
		spot.MonthlyRate = pricing.ToCents(decimal.NewFromFloat(*input.MonthlyRate))
	}
	if input.Active != nil {
		spot.Active = *input.Active
	}

	if err := s.parkingRepo.UpdateSpot(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

// DeleteSpot soft-deletes a spot. Spots with booked dates are deactivated
// instead via UpdateSpot, so history stays intact.
func (s *ParkingService) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	spot, err := s.GetSpot(ctx, id)
	if err != nil {
		return err
	}

	overlap, err := s.parkingRepo.HasOverlap(ctx, spot.ID, daterange.Today(), nil)
	if err != nil {
		return err
	}
	if overlap {
		return apperror.NewConflictError("Spot has upcoming reservations")
	}

	return s.parkingRepo.DeleteSpot(ctx, id)
}

// ReserveInput is a reservation request, typically from the public lot form.
type ReserveInput struct {
	SpotID    uuid.UUID
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	StartsOn  time.Time
	EndsOn    *time.Time
}

// Reserve books a spot. The contact info is linked to a customer record on
// a best-effort basis: a failed match or create never blocks the
// reservation, since the form is the lot's revenue front door.
func (s *ParkingService) Reserve(ctx context.Context, input *ReserveInput) (*entity.ParkingReservation, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	var fields []apperror.FieldError
	if input.FirstName == "" {
		fields = append(fields, apperror.FieldError{Field: "first_name", Message: "is required"})
	}
	if input.LastName == "" {
		fields = append(fields, apperror.FieldError{Field: "last_name", Message: "is required"})
	}
	if input.EndsOn != nil && input.EndsOn.Before(input.StartsOn) {
		fields = append(fields, apperror.FieldError{Field: "ends_on", Message: "must not be before starts_on"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	spot, err := s.parkingRepo.GetSpot(ctx, input.SpotID)
	if err != nil {
		return nil, err
	}
	if spot == nil || !spot.Active {
		return nil, apperror.NewNotFoundError("Parking spot")
	}

	overlap, err := s.parkingRepo.HasOverlap(ctx, input.SpotID, input.StartsOn, input.EndsOn)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperror.NewConflictError("Spot is already reserved for those dates")
	}

	reservation := &entity.ParkingReservation{
		ShopID:    shopID,
		SpotID:    input.SpotID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     normalizeEmail(input.Email),
		StartsOn:  input.StartsOn,
		EndsOn:    input.EndsOn,
		Status:    enum.ReservationPending,
	}
	if input.Phone != nil {
		if normalized, ok := phone.NormalizeUS(*input.Phone); ok {
			reservation.Phone = &normalized
		} else {
			reservation.Phone = input.Phone
		}
	}

	link := s.customers.FindOrCreate(ctx, &MatchInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Type:      enum.CustomerParking,
	})
	if link.Linked {
		reservation.CustomerID = &link.CustomerID
	} else {
		s.logger.Warn("reservation saved without customer link",
			zap.String("spot", spot.Label),
			zap.String("reason", link.Reason))
	}

	if err := s.parkingRepo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}

	return reservation, nil
}

// GetReservation retrieves a reservation by ID
func (s *ParkingService) GetReservation(ctx context.Context, id uuid.UUID) (*entity.ParkingReservation, error) {
	reservation, err := s.parkingRepo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperror.NewNotFoundError("Reservation")
	}
	return reservation, nil
}

// ListReservations lists reservations with optional filters
func (s *ParkingService) ListReservations(ctx context.Context, params *pagination.PaginationParams, status *enum.ReservationStatus, spotID *uuid.UUID) (*pagination.PaginatedResult[entity.ParkingReservation], error) {
	reservations, total, err := s.parkingRepo.ListReservations(ctx, params, status, spotID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(reservations, pag), nil
}

// UpdateReservationStatus moves a reservation through its lifecycle
func (s *ParkingService) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status enum.ReservationStatus) (*entity.ParkingReservation, error) {
	reservation, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid reservation status")
	}

	reservation.Status = status
	if status == enum.ReservationEnded && reservation.EndsOn == nil {
		// Reservation bounds are calendar dates in the shop's zone.
		today := daterange.Today()
		reservation.EndsOn = &today
	}

	if err := s.parkingRepo.UpdateReservation(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}
