package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CategorySalesResult represents revenue aggregated by job category
type CategorySalesResult struct {
	Category string
	Revenue  int64 // cents
	JobCount int
}

// TopCustomerResult represents a customer's spending over a window
type TopCustomerResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	TotalSpent   int64 // cents
	JobCount     int
}

// DailyRevenueResult represents revenue for a single day
type DailyRevenueResult struct {
	Date    time.Time
	Revenue int64 // cents
	// PartsCost is the summed part cost basis, for margin.
	PartsCost int64
}

// ReportRepository defines the aggregation queries behind the reports screen.
// All windows are inclusive calendar-date bounds in the shop timezone,
// produced by the date range resolver.
type ReportRepository interface {
	// GetRevenue sums completed-job totals over the window.
	GetRevenue(ctx context.Context, from, to time.Time) (int64, error)
	// GetPaymentsReceived sums recorded payments over the window.
	GetPaymentsReceived(ctx context.Context, from, to time.Time) (int64, error)
	// CountJobsCompleted counts jobs completed within the window.
	CountJobsCompleted(ctx context.Context, from, to time.Time) (int64, error)
	GetSalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySalesResult, error)
	GetTopCustomers(ctx context.Context, from, to time.Time, limit int) ([]TopCustomerResult, error)
	GetDailyRevenue(ctx context.Context, from, to time.Time) ([]DailyRevenueResult, error)
	// CountActiveReservations counts pending/active parking reservations.
	CountActiveReservations(ctx context.Context) (int64, error)
}
