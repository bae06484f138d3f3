package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tomdro61/shop-pilot-sub001/internal/config"
	domainRepo "github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/handler"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer *handler.CustomerHandler
	Vehicle  *handler.VehicleHandler
	Job      *handler.JobHandler
	Estimate *handler.EstimateHandler
	Invoice  *handler.InvoiceHandler
	Parking  *handler.ParkingHandler
	Settings *handler.SettingsHandler
	Report   *handler.ReportHandler
	Team     *handler.TeamHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	ShopRepo        domainRepo.ShopRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Every route below needs a resolved shop, including the public intake
	// surface, which resolves it from the subdomain.
	shopScoped := router.Group("")
	shopScoped.Use(middleware.ShopMiddleware(deps.ShopRepo))

	rateLimiter := middleware.NewShopRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	shopScoped.Use(rateLimiter.Middleware())

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Public intake surface: the lot reservation form, no operator session.
	public := shopScoped.Group("/public")
	{
		public.GET("/parking/spots", h.Parking.ListSpots)
		public.POST("/parking/reservations", idempotency, h.Parking.Reserve)
	}

	v1 := shopScoped.Group("/api/v1")
	{
		registerCustomerRoutes(v1, h)
		registerVehicleRoutes(v1, h)
		registerJobRoutes(v1, h)
		registerEstimateRoutes(v1, h)
		registerInvoiceRoutes(v1, h, idempotency)
		registerParkingRoutes(v1, h, idempotency)
		registerSettingsRoutes(v1, h)
		registerReportRoutes(v1, h)
		registerTeamRoutes(v1, h)
	}

	return router
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerVehicleRoutes(v1 *gin.RouterGroup, h *Handlers) {
	vehicles := v1.Group("/vehicles")
	{
		vehicles.GET("", h.Vehicle.List)
		vehicles.POST("", h.Vehicle.Create)
		vehicles.GET("/:id", h.Vehicle.Get)
		vehicles.PUT("/:id", h.Vehicle.Update)
		vehicles.DELETE("/:id", h.Vehicle.Delete)
	}
}

func registerJobRoutes(v1 *gin.RouterGroup, h *Handlers) {
	jobs := v1.Group("/jobs")
	{
		jobs.GET("", h.Job.List)
		jobs.POST("", h.Job.Create)
		jobs.GET("/:id", h.Job.Get)
		jobs.PUT("/:id", h.Job.Update)
		jobs.PATCH("/:id/status", h.Job.UpdateStatus)
		jobs.DELETE("/:id", h.Job.Delete)
		jobs.POST("/:id/items", h.Job.AddItem)
		jobs.PUT("/:id/items/:itemId", h.Job.UpdateItem)
		jobs.DELETE("/:id/items/:itemId", h.Job.RemoveItem)
		jobs.POST("/:id/recalculate", h.Job.Recalculate)
	}
}

func registerEstimateRoutes(v1 *gin.RouterGroup, h *Handlers) {
	estimates := v1.Group("/estimates")
	{
		estimates.GET("", h.Estimate.List)
		estimates.POST("", h.Estimate.Create)
		estimates.GET("/:id", h.Estimate.Get)
		estimates.DELETE("/:id", h.Estimate.Delete)
		estimates.POST("/:id/items", h.Estimate.AddItem)
		estimates.DELETE("/:id/items/:itemId", h.Estimate.RemoveItem)
		estimates.POST("/:id/send", h.Estimate.Send)
		estimates.POST("/:id/approve", h.Estimate.Approve)
		estimates.POST("/:id/decline", h.Estimate.Decline)
	}
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	invoices := v1.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/send", h.Invoice.Send)
		invoices.POST("/:id/void", h.Invoice.Void)
		invoices.POST("/:id/payments", idempotency, h.Invoice.RecordPayment)
	}
}

func registerParkingRoutes(v1 *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	parking := v1.Group("/parking")
	{
		parking.GET("/spots", h.Parking.ListSpots)
		parking.POST("/spots", h.Parking.CreateSpot)
		parking.PUT("/spots/:id", h.Parking.UpdateSpot)
		parking.DELETE("/spots/:id", h.Parking.DeleteSpot)
		parking.GET("/reservations", h.Parking.ListReservations)
		parking.POST("/reservations", idempotency, h.Parking.Reserve)
		parking.GET("/reservations/:id", h.Parking.GetReservation)
		parking.PATCH("/reservations/:id/status", h.Parking.UpdateReservationStatus)
	}
}

func registerSettingsRoutes(v1 *gin.RouterGroup, h *Handlers) {
	settings := v1.Group("/settings")
	{
		settings.GET("", h.Settings.Get)
		settings.PUT("", h.Settings.Update)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/sales-by-category", h.Report.SalesByCategory)
		reports.GET("/top-customers", h.Report.TopCustomers)
		reports.GET("/daily-revenue", h.Report.DailyRevenue)
	}
}

func registerTeamRoutes(v1 *gin.RouterGroup, h *Handlers) {
	team := v1.Group("/team")
	{
		team.GET("", h.Team.List)
		team.POST("", h.Team.Create)
		team.GET("/:id", h.Team.Get)
		team.PUT("/:id", h.Team.Update)
		team.DELETE("/:id", h.Team.Delete)
	}
}
