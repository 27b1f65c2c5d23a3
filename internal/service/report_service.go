package service

import (
	"fmt"
	"log"
	"time"

	"rentafacil/internal/entities"
	"rentafacil/internal/repository"
)

type ReportService struct {
	Repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) *ReportService {
	return &ReportService{Repo: repo}
}

func (s *ReportService) DailyReservationSummary(date time.Time) (*entities.DailyReservationSummary, error) {
	return s.Repo.DailyReservationSummary(date)
}

func (s *ReportService) VehicleUtilization(date time.Time) ([]entities.VehicleUtilizationReport, error) {
	return s.Repo.VehicleUtilization(date)
}

func (s *ReportService) MonthlyRevenueSummary(year, month int) (*entities.MonthlyRevenueSummary, error) {
	return s.Repo.MonthlyRevenueSummary(year, month)
}

func (s *ReportService) CustomerMetrics(date time.Time) (*entities.CustomerMetrics, error) {
	return s.Repo.CustomerMetrics(date)
}

// GenerateAllDailyReports runs the three nightly reports for the given day
// and, on the first of the month, the revenue summary for the month that
// just ended. Results are logged; the admin API re-runs the aggregations on
// demand.
func (s *ReportService) GenerateAllDailyReports(date time.Time) error {
	log.Printf("Cron Job: Generating daily reports for %s", date.Format("2006-01-02"))

	summary, err := s.Repo.DailyReservationSummary(date)
	if err != nil {
		return fmt.Errorf("cron job: daily reservation summary failed: %w", err)
	}
	log.Printf("Daily summary %s: %d reservations (%d confirmed, %d cancelled, %d pending), revenue %.2f, %d new customers",
		date.Format("2006-01-02"), summary.TotalReservations, summary.ConfirmedReservations,
		summary.CancelledReservations, summary.PendingReservations, summary.TotalRevenue, summary.NewCustomers)

	utilization, err := s.Repo.VehicleUtilization(date)
	if err != nil {
		return fmt.Errorf("cron job: vehicle utilization report failed: %w", err)
	}
	log.Printf("Vehicle utilization %s: %d vehicles reported", date.Format("2006-01-02"), len(utilization))

	metrics, err := s.Repo.CustomerMetrics(date)
	if err != nil {
		return fmt.Errorf("cron job: customer metrics failed: %w", err)
	}
	log.Printf("Customer metrics %s: %d total, %d new, %d active, %d returning",
		date.Format("2006-01-02"), metrics.TotalCustomers, metrics.NewCustomersToday,
		metrics.ActiveCustomers, metrics.ReturningCustomers)

	if date.Day() == 1 {
		previousMonth := date.AddDate(0, -1, 0)
		monthly, err := s.Repo.MonthlyRevenueSummary(previousMonth.Year(), int(previousMonth.Month()))
		if err != nil {
			return fmt.Errorf("cron job: monthly revenue summary failed: %w", err)
		}
		log.Printf("Monthly summary %d-%02d: %d reservations, revenue %.2f",
			monthly.Year, monthly.Month, monthly.TotalReservations, monthly.TotalRevenue)
	}

	log.Printf("Cron Job: All daily reports generated for %s", date.Format("2006-01-02"))
	return nil
}
