package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	domainRepo "github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
	"gorm.io/gorm"
)

type parkingRepository struct {
	db *gorm.DB
}

// NewParkingRepository creates a new parking repository
func NewParkingRepository(db *gorm.DB) domainRepo.ParkingRepository {
	return &parkingRepository{db: db}
}

func (r *parkingRepository) CreateSpot(ctx context.Context, spot *entity.ParkingSpot) error {
	return r.db.WithContext(ctx).Create(spot).Error
}

func (r *parkingRepository) GetSpot(ctx context.Context, id uuid.UUID) (*entity.ParkingSpot, error) {
	var spot entity.ParkingSpot
	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).First(&spot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &spot, err
}

func (r *parkingRepository) UpdateSpot(ctx context.Context, spot *entity.ParkingSpot) error {
	return r.db.WithContext(ctx).Save(spot).Error
}

func (r *parkingRepository) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(ShopScope(ctx)).Delete(&entity.ParkingSpot{}, "id = ?", id).Error
}

func (r *parkingRepository) ListSpots(ctx context.Context, activeOnly bool) ([]entity.ParkingSpot, error) {
	var spots []entity.ParkingSpot
	query := r.db.WithContext(ctx).Scopes(ShopScope(ctx))
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("label ASC").Find(&spots).Error
	return spots, err
}

func (r *parkingRepository) CreateReservation(ctx context.Context, res *entity.ParkingReservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *parkingRepository) GetReservation(ctx context.Context, id uuid.UUID) (*entity.ParkingReservation, error) {
	var res entity.ParkingReservation
	err := r.db.WithContext(ctx).Scopes(ShopScope(ctx)).
		Preload("Spot").
		First(&res, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &res, err
}

func (r *parkingRepository) UpdateReservation(ctx context.Context, res *entity.ParkingReservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *parkingRepository) ListReservations(ctx context.Context, params *pagination.PaginationParams, status *enum.ReservationStatus, spotID *uuid.UUID) ([]entity.ParkingReservation, int64, error) {
	var reservations []entity.ParkingReservation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ParkingReservation{}).Scopes(ShopScope(ctx))

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if spotID != nil {
		query = query.Where("spot_id = ?", *spotID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Spot").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("starts_on DESC").
		Find(&reservations).Error

	return reservations, total, err
}

// HasOverlap checks pending and active reservations on the spot for a date
// intersection with [startsOn, endsOn]. An open-ended existing reservation
// overlaps anything starting after it begins; an open-ended request overlaps
// anything not already ended before it starts.
func (r *parkingRepository) HasOverlap(ctx context.Context, spotID uuid.UUID, startsOn time.Time, endsOn *time.Time) (bool, error) {
	var count int64

	query := r.db.WithContext(ctx).Model(&entity.ParkingReservation{}).
		Where("spot_id = ?", spotID).
		Where("status IN ?", []enum.ReservationStatus{enum.ReservationPending, enum.ReservationActive}).
		Where("ends_on IS NULL OR ends_on >= ?", startsOn)

	if endsOn != nil {
		query = query.Where("starts_on <= ?", *endsOn)
	}

	err := query.Count(&count).Error
	return count > 0, err
}
