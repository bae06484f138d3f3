package service

import (
	"context"
	"time"

	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/daterange"
)

// ReportService assembles the reports screen: a summary of revenue,
// payments, and job throughput over a resolved date range, plus breakdowns.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// ReportQuery selects the reporting window. Preset takes precedence; From
// and To only apply to the custom preset.
type ReportQuery struct {
	Preset daterange.Preset
	From   *time.Time
	To     *time.Time
}

// Summary is the reports screen's headline numbers. Money fields are cents.
type Summary struct {
	Range              daterange.Range `json:"range"`
	Revenue            int64           `json:"revenue"`
	PaymentsReceived   int64           `json:"payments_received"`
	JobsCompleted      int64           `json:"jobs_completed"`
	AverageTicket      int64           `json:"average_ticket"`
	ActiveReservations int64           `json:"active_reservations"`
}

// GetSummary computes the headline numbers for the resolved window
func (s *ReportService) GetSummary(ctx context.Context, q ReportQuery) (*Summary, error) {
	r := daterange.Resolve(q.Preset, q.From, q.To, daterange.Today())

	revenue, err := s.reportRepo.GetRevenue(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	payments, err := s.reportRepo.GetPaymentsReceived(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	completed, err := s.reportRepo.CountJobsCompleted(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reportRepo.CountActiveReservations(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Range:              r,
		Revenue:            revenue,
		PaymentsReceived:   payments,
		JobsCompleted:      completed,
		ActiveReservations: reservations,
	}
	if completed > 0 {
		summary.AverageTicket = revenue / completed
	}
	return summary, nil
}

// GetSalesByCategory breaks revenue down by line item category
func (s *ReportService) GetSalesByCategory(ctx context.Context, q ReportQuery) (daterange.Range, []repository.CategorySalesResult, error) {
	r := daterange.Resolve(q.Preset, q.From, q.To, daterange.Today())
	results, err := s.reportRepo.GetSalesByCategory(ctx, r.From, r.To)
	return r, results, err
}

// GetTopCustomers ranks customers by completed-job spend
func (s *ReportService) GetTopCustomers(ctx context.Context, q ReportQuery, limit int) (daterange.Range, []repository.TopCustomerResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	r := daterange.Resolve(q.Preset, q.From, q.To, daterange.Today())
	results, err := s.reportRepo.GetTopCustomers(ctx, r.From, r.To, limit)
	return r, results, err
}

// GetDailyRevenue returns the per-day revenue series for charting
func (s *ReportService) GetDailyRevenue(ctx context.Context, q ReportQuery) (daterange.Range, []repository.DailyRevenueResult, error) {
	r := daterange.Resolve(q.Preset, q.From, q.To, daterange.Today())
	results, err := s.reportRepo.GetDailyRevenue(ctx, r.From, r.To)
	return r, results, err
}
