package service

import (
	"context"
	"fmt"

	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	infraRepo "github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/apperror"
)

// SettingsService handles the shop's pricing configuration. A shop with no
// settings row reads defaults; the first update creates the row.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the shop's settings, falling back to defaults when no
// row exists yet.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.ShopSettings, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	settings, err := s.settingsRepo.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return entity.DefaultShopSettings(shopID), nil
	}
	return settings, nil
}

// UpdateSettingsInput represents the settings update input. Nil fields are
// left unchanged.
type UpdateSettingsInput struct {
	TaxRate       *float64
	ShopSupplies  *entity.FeeRuleConfig
	Hazmat        *entity.FeeRuleConfig
	JobCategories *[]string
}

// UpdateSettings validates and persists new pricing configuration. Invalid
// fee rules are rejected before anything is stored, so a configuration
// mistake can never silently misprice a job.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.ShopSettings, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	settings, err := s.settingsRepo.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	created := settings == nil
	if created {
		settings = entity.DefaultShopSettings(shopID)
	}

	if input.TaxRate != nil {
		settings.TaxRate = *input.TaxRate
	}
	if input.ShopSupplies != nil {
		settings.ShopSupplies = *input.ShopSupplies
	}
	if input.Hazmat != nil {
		settings.Hazmat = *input.Hazmat
	}
	if input.JobCategories != nil {
		// Category order is meaningful but the entries form a set.
		seen := make(map[string]struct{}, len(*input.JobCategories))
		for _, cat := range *input.JobCategories {
			if _, ok := seen[cat]; ok {
				return nil, apperror.NewConfigurationError(
					fmt.Sprintf("duplicate job category %q", cat))
			}
			seen[cat] = struct{}{}
		}
		settings.JobCategories = *input.JobCategories
	}

	if err := settings.Pricing().Validate(); err != nil {
		return nil, apperror.NewConfigurationError(err.Error())
	}

	if created {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
