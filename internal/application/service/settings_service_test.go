package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/pkg/apperror"
)

type fakeSettingsRepo struct {
	settings *entity.ShopSettings
}

func (f *fakeSettingsRepo) GetByShopID(ctx context.Context, shopID uuid.UUID) (*entity.ShopSettings, error) {
	if f.settings == nil || f.settings.ShopID != shopID {
		return nil, nil
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, s *entity.ShopSettings) error {
	f.settings = s
	return nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s *entity.ShopSettings) error {
	f.settings = s
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func TestGetSettingsReturnsDefaultsWhenMissing(t *testing.T) {
	shopID := uuid.New()
	svc := NewSettingsService(&fakeSettingsRepo{})

	settings, err := svc.GetSettings(shopCtx(shopID))

	require.NoError(t, err)
	assert.Equal(t, shopID, settings.ShopID)
	assert.Zero(t, settings.TaxRate)
	assert.False(t, settings.ShopSupplies.Enabled)
	assert.False(t, settings.Hazmat.Enabled)
	assert.NotEmpty(t, settings.JobCategories)
}

func TestUpdateSettingsCreatesRowOnFirstWrite(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	updated, err := svc.UpdateSettings(shopCtx(shopID), &UpdateSettingsInput{
		TaxRate: floatPtr(0.0625),
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0625, updated.TaxRate)
	require.NotNil(t, repo.settings)
	assert.Equal(t, shopID, repo.settings.ShopID)
}

func TestUpdateSettingsRejectsTaxRateAboveOne(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	_, err := svc.UpdateSettings(shopCtx(shopID), &UpdateSettingsInput{
		TaxRate: floatPtr(1.5),
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Nil(t, repo.settings)
}

func TestUpdateSettingsRejectsNegativeFeeRate(t *testing.T) {
	shopID := uuid.New()
	svc := NewSettingsService(&fakeSettingsRepo{})

	_, err := svc.UpdateSettings(shopCtx(shopID), &UpdateSettingsInput{
		ShopSupplies: &entity.FeeRuleConfig{
			Enabled: true,
			Method:  enum.FeePercentOfTotal,
			Rate:    -0.05,
		},
	})

	require.Error(t, err)
}

func TestUpdateSettingsRejectsUnknownFeeMethod(t *testing.T) {
	shopID := uuid.New()
	svc := NewSettingsService(&fakeSettingsRepo{})

	_, err := svc.UpdateSettings(shopCtx(shopID), &UpdateSettingsInput{
		Hazmat: &entity.FeeRuleConfig{
			Enabled: true,
			Method:  enum.FeeMethod("percent_of_vibes"),
			Rate:    0.05,
		},
	})

	require.Error(t, err)
}

func TestUpdateSettingsRejectsDuplicateJobCategories(t *testing.T) {
	shopID := uuid.New()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	_, err := svc.UpdateSettings(shopCtx(shopID), &UpdateSettingsInput{
		JobCategories: &[]string{"brakes", "tires", "brakes"},
	})

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Nil(t, repo.settings)
}

func TestUpdateSettingsLeavesUnsetFieldsAlone(t *testing.T) {
	shopID := uuid.New()
	existing := entity.DefaultShopSettings(shopID)
	existing.TaxRate = 0.08
	existing.ShopSupplies = entity.FeeRuleConfig{
		Enabled: true,
		Method:  enum.FeePercentOfLabor,
		Rate:    0.05,
	}
	repo := &fakeSettingsRepo{settings: existing}
	svc := NewSettingsService(repo)

	updated, err := svc.UpdateSettings(shopCtx(shopID), &UpdateSettingsInput{
		JobCategories: &[]string{"brakes", "tires"},
	})

	require.NoError(t, err)
	assert.Equal(t, 0.08, updated.TaxRate)
	assert.True(t, updated.ShopSupplies.Enabled)
	assert.Equal(t, entity.StringList{"brakes", "tires"}, updated.JobCategories)
}
