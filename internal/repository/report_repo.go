package repository

import (
	"database/sql"
	"fmt"
	"time"

	"rentafacil/internal/db"
	"rentafacil/internal/entities"
)

type ReportRepository interface {
	DailyReservationSummary(date time.Time) (*entities.DailyReservationSummary, error)
	VehicleUtilization(date time.Time) ([]entities.VehicleUtilizationReport, error)
	MonthlyRevenueSummary(year, month int) (*entities.MonthlyRevenueSummary, error)
	CustomerMetrics(date time.Time) (*entities.CustomerMetrics, error)
}

type PostgresReportRepository struct {
	DB *sql.DB
}

func NewReportRepository(database *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{DB: database}
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func (r *PostgresReportRepository) DailyReservationSummary(date time.Time) (*entities.DailyReservationSummary, error) {
	startOfDay, endOfDay := dayBounds(date)

	summary := entities.DailyReservationSummary{
		ReportDate:  startOfDay,
		GeneratedAt: time.Now().UTC(),
	}
	err := r.DB.QueryRow(`
		SELECT
			COUNT(id),
			COUNT(id) FILTER (WHERE status = '`+db.StatusConfirmed+`'),
			COUNT(id) FILTER (WHERE status = '`+db.StatusCancelled+`'),
			COUNT(id) FILTER (WHERE status = '`+db.StatusPending+`'),
			COALESCE(SUM(total_price) FILTER (WHERE status = '`+db.StatusConfirmed+`'), 0)
		FROM reservations
		WHERE created_at >= $1 AND created_at < $2`,
		startOfDay, endOfDay,
	).Scan(
		&summary.TotalReservations,
		&summary.ConfirmedReservations,
		&summary.CancelledReservations,
		&summary.PendingReservations,
		&summary.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating daily reservation summary: %w", err)
	}

	err = r.DB.QueryRow(`SELECT COUNT(id) FROM customers WHERE created_at >= $1 AND created_at < $2`,
		startOfDay, endOfDay).Scan(&summary.NewCustomers)
	if err != nil {
		return nil, fmt.Errorf("error counting new customers: %w", err)
	}

	if summary.ConfirmedReservations > 0 {
		summary.AverageReservationValue = summary.TotalRevenue / float64(summary.ConfirmedReservations)
	}
	return &summary, nil
}

func (r *PostgresReportRepository) VehicleUtilization(date time.Time) ([]entities.VehicleUtilizationReport, error) {
	startOfDay, endOfDay := dayBounds(date)

	rows, err := r.DB.Query(`
		SELECT
			v.id, v.model, v.type,
			COUNT(r.id),
			COALESCE(SUM(
				GREATEST(0, EXTRACT(EPOCH FROM (LEAST(r.end_date, $2) - GREATEST(r.start_date, $1))) / 86400)
			), 0),
			COALESCE(SUM(r.total_price), 0)
		FROM vehicles v
		LEFT JOIN reservations r
			ON r.vehicle_id = v.id
			AND r.status = '`+db.StatusConfirmed+`'
			AND r.start_date < $2
			AND r.end_date > $1
		GROUP BY v.id, v.model, v.type
		ORDER BY v.id`,
		startOfDay, endOfDay,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle utilization: %w", err)
	}
	defer rows.Close()

	generatedAt := time.Now().UTC()
	var reports []entities.VehicleUtilizationReport
	for rows.Next() {
		report := entities.VehicleUtilizationReport{
			ReportDate:  startOfDay,
			GeneratedAt: generatedAt,
		}
		var daysBooked float64
		if err := rows.Scan(
			&report.VehicleID, &report.VehicleModel, &report.VehicleType,
			&report.TotalReservations, &daysBooked, &report.TotalRevenue,
		); err != nil {
			return nil, fmt.Errorf("error scanning vehicle utilization row: %w", err)
		}
		report.DaysBooked = int(daysBooked)
		// Single-day window: one booked day is 100% utilization.
		report.UtilizationPercentage = daysBooked * 100
		if report.UtilizationPercentage > 100 {
			report.UtilizationPercentage = 100
		}
		reports = append(reports, report)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicle utilization rows: %w", err)
	}
	return reports, nil
}

func (r *PostgresReportRepository) MonthlyRevenueSummary(year, month int) (*entities.MonthlyRevenueSummary, error) {
	startOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	rows, err := r.DB.Query(`
		SELECT v.type, COUNT(r.id), COALESCE(SUM(r.total_price), 0)
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.status = '`+db.StatusConfirmed+`'
		AND r.created_at >= $1 AND r.created_at < $2
		GROUP BY v.type
		ORDER BY v.type`,
		startOfMonth, endOfMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly revenue: %w", err)
	}
	defer rows.Close()

	summary := entities.MonthlyRevenueSummary{
		Year:                 year,
		Month:                month,
		RevenueByVehicleType: map[string]float64{},
		ReservationsByType:   map[string]int{},
		GeneratedAt:          time.Now().UTC(),
	}
	for rows.Next() {
		var vehicleType string
		var count int
		var revenue float64
		if err := rows.Scan(&vehicleType, &count, &revenue); err != nil {
			return nil, fmt.Errorf("error scanning monthly revenue row: %w", err)
		}
		summary.RevenueByVehicleType[vehicleType] = revenue
		summary.ReservationsByType[vehicleType] = count
		summary.TotalRevenue += revenue
		summary.TotalReservations += count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating monthly revenue rows: %w", err)
	}

	if summary.TotalReservations > 0 {
		summary.AverageReservationValue = summary.TotalRevenue / float64(summary.TotalReservations)
	}
	return &summary, nil
}

func (r *PostgresReportRepository) CustomerMetrics(date time.Time) (*entities.CustomerMetrics, error) {
	startOfDay, endOfDay := dayBounds(date)
	thirtyDaysAgo := startOfDay.AddDate(0, 0, -30)

	metrics := entities.CustomerMetrics{
		ReportDate:  startOfDay,
		GeneratedAt: time.Now().UTC(),
	}
	var totalReservations int
	err := r.DB.QueryRow(`
		SELECT
			(SELECT COUNT(id) FROM customers),
			(SELECT COUNT(id) FROM customers WHERE created_at >= $1 AND created_at < $2),
			(SELECT COUNT(DISTINCT customer_id) FROM reservations WHERE created_at >= $3),
			(SELECT COUNT(*) FROM (
				SELECT customer_id FROM reservations GROUP BY customer_id HAVING COUNT(id) > 1
			) returning_customers),
			(SELECT COUNT(id) FROM reservations)`,
		startOfDay, endOfDay, thirtyDaysAgo,
	).Scan(
		&metrics.TotalCustomers,
		&metrics.NewCustomersToday,
		&metrics.ActiveCustomers,
		&metrics.ReturningCustomers,
		&totalReservations,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating customer metrics: %w", err)
	}

	if metrics.TotalCustomers > 0 {
		metrics.AverageReservationsPerCustomer = float64(totalReservations) / float64(metrics.TotalCustomers)
	}
	return &metrics, nil
}
