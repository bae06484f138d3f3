package repository

import (
	"context"
	"time"

	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	domainRepo "github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

// completedJobs scopes a query to the shop's jobs completed within the
// window. Reports read the completion date, not created_at, so a job
// counts in the period the work was finished.
func (r *reportRepository) completedJobs(ctx context.Context, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.Job{}).
		Scopes(ShopScope(ctx)).
		Where("completed_at IS NOT NULL").
		Where("completed_at >= ? AND completed_at <= ?", from, to)
}

func (r *reportRepository) GetRevenue(ctx context.Context, from, to time.Time) (int64, error) {
	var revenue int64
	err := r.completedJobs(ctx, from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (r *reportRepository) GetPaymentsReceived(ctx context.Context, from, to time.Time) (int64, error) {
	var received int64
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Scopes(func(db *gorm.DB) *gorm.DB {
			shopID, ok := GetShopID(ctx)
			if !ok {
				return db.Where("1 = 0")
			}
			return db.Where("invoices.shop_id = ?", shopID)
		}).
		Where("payments.received_at >= ? AND payments.received_at <= ?", from, to).
		Where("payments.deleted_at IS NULL").
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&received).Error
	return received, err
}

func (r *reportRepository) CountJobsCompleted(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.completedJobs(ctx, from, to).Count(&count).Error
	return count, err
}

func (r *reportRepository) GetSalesByCategory(ctx context.Context, from, to time.Time) ([]domainRepo.CategorySalesResult, error) {
	var results []domainRepo.CategorySalesResult
	err := r.db.WithContext(ctx).Model(&entity.JobItem{}).
		Joins("JOIN jobs ON jobs.id = job_items.job_id").
		Scopes(func(db *gorm.DB) *gorm.DB {
			shopID, ok := GetShopID(ctx)
			if !ok {
				return db.Where("1 = 0")
			}
			return db.Where("jobs.shop_id = ?", shopID)
		}).
		Where("jobs.completed_at IS NOT NULL").
		Where("jobs.completed_at >= ? AND jobs.completed_at <= ?", from, to).
		Where("jobs.deleted_at IS NULL").
		Select("COALESCE(job_items.category, 'uncategorized') AS category, " +
			"COALESCE(SUM(ROUND(job_items.quantity * job_items.unit_cost)), 0) AS revenue, " +
			"COUNT(DISTINCT jobs.id) AS job_count").
		Group("COALESCE(job_items.category, 'uncategorized')").
		Order("revenue DESC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetTopCustomers(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult
	err := r.completedJobs(ctx, from, to).
		Joins("JOIN customers ON customers.id = jobs.customer_id").
		Select("jobs.customer_id AS customer_id, " +
			"customers.first_name || ' ' || customers.last_name AS customer_name, " +
			"COALESCE(SUM(jobs.total), 0) AS total_spent, " +
			"COUNT(jobs.id) AS job_count").
		Group("jobs.customer_id, customers.first_name, customers.last_name").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetDailyRevenue(ctx context.Context, from, to time.Time) ([]domainRepo.DailyRevenueResult, error) {
	var results []domainRepo.DailyRevenueResult
	err := r.completedJobs(ctx, from, to).
		Select("completed_at AS date, " +
			"COALESCE(SUM(total), 0) AS revenue, " +
			"COALESCE(SUM(parts_cost.cost), 0) AS parts_cost").
		Joins("LEFT JOIN LATERAL (" +
			"SELECT COALESCE(SUM(ROUND(ji.quantity * ji.part_cost)), 0) AS cost " +
			"FROM job_items ji WHERE ji.job_id = jobs.id AND ji.part_cost IS NOT NULL " +
			"AND ji.deleted_at IS NULL) parts_cost ON TRUE").
		Group("completed_at").
		Order("date ASC").
		Scan(&results).Error
	return results, err
}

func (r *reportRepository) CountActiveReservations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ParkingReservation{}).
		Scopes(ShopScope(ctx)).
		Where("status IN ?", []enum.ReservationStatus{enum.ReservationPending, enum.ReservationActive}).
		Count(&count).Error
	return count, err
}
