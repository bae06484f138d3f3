package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"github.com/tomdro61/shop-pilot-sub001/internal/config"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Shop and team
		&entity.Shop{},
		&entity.ShopSettings{},
		&entity.User{},

		// Customers and vehicles
		&entity.Customer{},
		&entity.Vehicle{},

		// Work
		&entity.Estimate{},
		&entity.EstimateItem{},
		&entity.Job{},
		&entity.JobItem{},

		// Billing
		&entity.Invoice{},
		&entity.Payment{},

		// Parking lot
		&entity.ParkingSpot{},
		&entity.ParkingReservation{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SeedDefaultData creates a default shop with its settings row when the
// database is empty, so a fresh install is usable immediately. The shop
// name and slug are configurable via environment variables.
func SeedDefaultData(db *gorm.DB, cfg *config.ShopConfig) error {
	shopName := viper.GetString("SHOP_NAME")
	shopSlug := viper.GetString("SHOP_SLUG")
	if shopName == "" {
		shopName = "Main Street Auto"
	}
	if shopSlug == "" {
		shopSlug = "main-street-auto"
	}

	var shop entity.Shop
	if err := db.Where("slug = ?", shopSlug).First(&shop).Error; err != nil {
		shop = entity.Shop{
			Name:     shopName,
			Slug:     shopSlug,
			Timezone: cfg.Timezone,
			Currency: cfg.Currency,
		}
		if err := db.Create(&shop).Error; err != nil {
			return fmt.Errorf("failed to create default shop: %w", err)
		}
		log.Printf("Default shop created: %s", shopSlug)
	}

	var settings entity.ShopSettings
	if err := db.Where("shop_id = ?", shop.ID).First(&settings).Error; err != nil {
		if err := db.Create(entity.DefaultShopSettings(shop.ID)).Error; err != nil {
			return fmt.Errorf("failed to create default shop settings: %w", err)
		}
	}

	return nil
}
