package entities

import "time"

type DailyReservationSummary struct {
	ReportDate              time.Time `json:"report_date"`
	TotalReservations       int       `json:"total_reservations"`
	ConfirmedReservations   int       `json:"confirmed_reservations"`
	CancelledReservations   int       `json:"cancelled_reservations"`
	PendingReservations     int       `json:"pending_reservations"`
	TotalRevenue            float64   `json:"total_revenue"`
	AverageReservationValue float64   `json:"average_reservation_value"`
	NewCustomers            int       `json:"new_customers"`
	GeneratedAt             time.Time `json:"generated_at"`
}

type VehicleUtilizationReport struct {
	ReportDate            time.Time `json:"report_date"`
	VehicleID             int       `json:"vehicle_id"`
	VehicleModel          string    `json:"vehicle_model"`
	VehicleType           string    `json:"vehicle_type"`
	TotalReservations     int       `json:"total_reservations"`
	DaysBooked            int       `json:"days_booked"`
	UtilizationPercentage float64   `json:"utilization_percentage"`
	TotalRevenue          float64   `json:"total_revenue"`
	GeneratedAt           time.Time `json:"generated_at"`
}

type MonthlyRevenueSummary struct {
	Year                    int                `json:"year"`
	Month                   int                `json:"month"`
	TotalRevenue            float64            `json:"total_revenue"`
	TotalReservations       int                `json:"total_reservations"`
	AverageReservationValue float64            `json:"average_reservation_value"`
	RevenueByVehicleType    map[string]float64 `json:"revenue_by_vehicle_type"`
	ReservationsByType      map[string]int     `json:"reservations_by_vehicle_type"`
	GeneratedAt             time.Time          `json:"generated_at"`
}

type CustomerMetrics struct {
	ReportDate                     time.Time `json:"report_date"`
	TotalCustomers                 int       `json:"total_customers"`
	NewCustomersToday              int       `json:"new_customers_today"`
	ActiveCustomers                int       `json:"active_customers"`
	ReturningCustomers             int       `json:"returning_customers"`
	AverageReservationsPerCustomer float64   `json:"average_reservations_per_customer"`
	GeneratedAt                    time.Time `json:"generated_at"`
}
