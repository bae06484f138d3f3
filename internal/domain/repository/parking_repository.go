package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
)

// ParkingRepository defines the interface for parking lot data operations
type ParkingRepository interface {
	CreateSpot(ctx context.Context, spot *entity.ParkingSpot) error
	GetSpot(ctx context.Context, id uuid.UUID) (*entity.ParkingSpot, error)
	UpdateSpot(ctx context.Context, spot *entity.ParkingSpot) error
	DeleteSpot(ctx context.Context, id uuid.UUID) error
	ListSpots(ctx context.Context, activeOnly bool) ([]entity.ParkingSpot, error)

	CreateReservation(ctx context.Context, res *entity.ParkingReservation) error
	GetReservation(ctx context.Context, id uuid.UUID) (*entity.ParkingReservation, error)
	UpdateReservation(ctx context.Context, res *entity.ParkingReservation) error
	ListReservations(ctx context.Context, params *pagination.PaginationParams, status *enum.ReservationStatus, spotID *uuid.UUID) ([]entity.ParkingReservation, int64, error)
	// HasOverlap reports whether the spot already has a pending or active
	// reservation intersecting [startsOn, endsOn]. A nil endsOn means
	// open-ended.
	HasOverlap(ctx context.Context, spotID uuid.UUID, startsOn time.Time, endsOn *time.Time) (bool, error)
}
