package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/pkg/apperror"
	"github.com/tomdro61/shop-pilot-sub001/pkg/daterange"
	"github.com/tomdro61/shop-pilot-sub001/pkg/pagination"
	"go.uber.org/zap"
)

type fakeParkingRepo struct {
	spots        []*entity.ParkingSpot
	reservations []*entity.ParkingReservation
}

func (f *fakeParkingRepo) CreateSpot(ctx context.Context, spot *entity.ParkingSpot) error {
	if spot.ID == uuid.Nil {
		spot.ID = uuid.New()
	}
	f.spots = append(f.spots, spot)
	return nil
}

func (f *fakeParkingRepo) GetSpot(ctx context.Context, id uuid.UUID) (*entity.ParkingSpot, error) {
	for _, s := range f.spots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeParkingRepo) UpdateSpot(ctx context.Context, spot *entity.ParkingSpot) error {
	return nil
}

func (f *fakeParkingRepo) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeParkingRepo) ListSpots(ctx context.Context, activeOnly bool) ([]entity.ParkingSpot, error) {
	var out []entity.ParkingSpot
	for _, s := range f.spots {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeParkingRepo) CreateReservation(ctx context.Context, res *entity.ParkingReservation) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	f.reservations = append(f.reservations, res)
	return nil
}

func (f *fakeParkingRepo) GetReservation(ctx context.Context, id uuid.UUID) (*entity.ParkingReservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeParkingRepo) UpdateReservation(ctx context.Context, res *entity.ParkingReservation) error {
	for i, r := range f.reservations {
		if r.ID == res.ID {
			f.reservations[i] = res
			return nil
		}
	}
	return nil
}

func (f *fakeParkingRepo) ListReservations(ctx context.Context, params *pagination.PaginationParams, status *enum.ReservationStatus, spotID *uuid.UUID) ([]entity.ParkingReservation, int64, error) {
	var out []entity.ParkingReservation
	for _, r := range f.reservations {
		if status != nil && r.Status != *status {
			continue
		}
		if spotID != nil && r.SpotID != *spotID {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeParkingRepo) HasOverlap(ctx context.Context, spotID uuid.UUID, startsOn time.Time, endsOn *time.Time) (bool, error) {
	for _, r := range f.reservations {
		if r.SpotID != spotID {
			continue
		}
		if r.Status != enum.ReservationPending && r.Status != enum.ReservationActive {
			continue
		}
		if r.EndsOn != nil && r.EndsOn.Before(startsOn) {
			continue
		}
		if endsOn != nil && r.StartsOn.After(*endsOn) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func newParkingFixture(t *testing.T, shopID uuid.UUID) (*ParkingService, *fakeParkingRepo, *entity.ParkingSpot) {
	t.Helper()

	repo := &fakeParkingRepo{}
	spot := &entity.ParkingSpot{ID: uuid.New(), ShopID: shopID, Label: "A1", Active: true}
	require.NoError(t, repo.CreateSpot(context.Background(), spot))

	customers := NewCustomerService(&fakeCustomerRepo{}, zap.NewNop())
	svc := NewParkingService(repo, customers, zap.NewNop())
	return svc, repo, spot
}

func TestReserveRejectsOverlappingDates(t *testing.T) {
	shopID := uuid.New()
	svc, _, spot := newParkingFixture(t, shopID)

	start := daterange.Today().AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 3)

	_, err := svc.Reserve(shopCtx(shopID), &ReserveInput{
		SpotID:    spot.ID,
		FirstName: "Dana",
		LastName:  "Reyes",
		StartsOn:  start,
		EndsOn:    &end,
	})
	require.NoError(t, err)

	overlapStart := start.AddDate(0, 0, 2)
	_, err = svc.Reserve(shopCtx(shopID), &ReserveInput{
		SpotID:    spot.ID,
		FirstName: "Lee",
		LastName:  "Okafor",
		StartsOn:  overlapStart,
		EndsOn:    nil,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestReserveLinksCustomerBestEffort(t *testing.T) {
	shopID := uuid.New()
	svc, repo, spot := newParkingFixture(t, shopID)

	start := daterange.Today()
	res, err := svc.Reserve(shopCtx(shopID), &ReserveInput{
		SpotID:    spot.ID,
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     strPtr("dana@example.com"),
		Phone:     strPtr("(555) 123-4567"),
		StartsOn:  start,
	})

	require.NoError(t, err)
	require.NotNil(t, res.CustomerID)
	require.NotNil(t, res.Phone)
	assert.Equal(t, "+15551234567", *res.Phone)
	assert.Len(t, repo.reservations, 1)
}

func TestEndReservationStampsBusinessDate(t *testing.T) {
	shopID := uuid.New()
	svc, _, spot := newParkingFixture(t, shopID)

	start := daterange.Today().AddDate(0, 0, -2)
	res, err := svc.Reserve(shopCtx(shopID), &ReserveInput{
		SpotID:    spot.ID,
		FirstName: "Dana",
		LastName:  "Reyes",
		StartsOn:  start,
	})
	require.NoError(t, err)
	require.Nil(t, res.EndsOn)

	ended, err := svc.UpdateReservationStatus(shopCtx(shopID), res.ID, enum.ReservationEnded)

	require.NoError(t, err)
	require.NotNil(t, ended.EndsOn)
	assert.True(t, ended.EndsOn.Equal(daterange.Today()),
		"EndsOn = %v, want today's date in the business zone", ended.EndsOn)
	assert.Equal(t, daterange.Zone(), ended.EndsOn.Location())
	assert.Equal(t, 0, ended.EndsOn.Hour())
}

func TestCancelReservationKeepsEndsOnUntouched(t *testing.T) {
	shopID := uuid.New()
	svc, _, spot := newParkingFixture(t, shopID)

	start := daterange.Today()
	res, err := svc.Reserve(shopCtx(shopID), &ReserveInput{
		SpotID:    spot.ID,
		FirstName: "Dana",
		LastName:  "Reyes",
		StartsOn:  start,
	})
	require.NoError(t, err)

	cancelled, err := svc.UpdateReservationStatus(shopCtx(shopID), res.ID, enum.ReservationCancelled)

	require.NoError(t, err)
	assert.Equal(t, enum.ReservationCancelled, cancelled.Status)
	assert.Nil(t, cancelled.EndsOn)
}
