package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tomdro61/shop-pilot-sub001/internal/application/service"
	"github.com/tomdro61/shop-pilot-sub001/internal/config"
	"github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/database"
	infraRepo "github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/repository"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/handler"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/routes"
	"github.com/tomdro61/shop-pilot-sub001/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.App.Debug)
	defer func() { _ = zlog.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db, &cfg.Shop); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	// Repositories
	shopRepo := infraRepo.NewShopRepository(db)
	settingsRepo := infraRepo.NewSettingsRepository(db)
	userRepo := infraRepo.NewUserRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	vehicleRepo := infraRepo.NewVehicleRepository(db)
	jobRepo := infraRepo.NewJobRepository(db)
	estimateRepo := infraRepo.NewEstimateRepository(db)
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	parkingRepo := infraRepo.NewParkingRepository(db)
	reportRepo := infraRepo.NewReportRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	// Services
	settingsService := service.NewSettingsService(settingsRepo)
	customerService := service.NewCustomerService(customerRepo, zlog)
	vehicleService := service.NewVehicleService(vehicleRepo, customerRepo)
	jobService := service.NewJobService(jobRepo, customerRepo, vehicleRepo, settingsService, zlog)
	estimateService := service.NewEstimateService(estimateRepo, jobRepo, customerRepo, settingsService, zlog)
	invoiceService := service.NewInvoiceService(invoiceRepo, jobRepo, zlog)
	parkingService := service.NewParkingService(parkingRepo, customerService, zlog)
	reportService := service.NewReportService(reportRepo)
	teamService := service.NewTeamService(userRepo)

	// Handlers
	h := &routes.Handlers{
		Customer: handler.NewCustomerHandler(customerService),
		Vehicle:  handler.NewVehicleHandler(vehicleService),
		Job:      handler.NewJobHandler(jobService),
		Estimate: handler.NewEstimateHandler(estimateService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Parking:  handler.NewParkingHandler(parkingService),
		Settings: handler.NewSettingsHandler(settingsService),
		Report:   handler.NewReportHandler(reportService),
		Team:     handler.NewTeamHandler(teamService),
	}

	router := routes.Setup(h, &routes.Deps{
		Cfg:             cfg,
		Logger:          zlog,
		ShopRepo:        shopRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	zlog.Info("starting server",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
