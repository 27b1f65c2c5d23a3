package api

import (
	"net/http"
	"strconv"
	"time"

	"rentafacil/internal/entities"
	"rentafacil/internal/service"
)

type ReportHandler struct {
	Service *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

type dailyReportsResponse struct {
	Summary     *entities.DailyReservationSummary   `json:"summary"`
	Utilization []entities.VehicleUtilizationReport `json:"vehicle_utilization"`
	Customers   *entities.CustomerMetrics           `json:"customer_metrics"`
}

// GetDailyReports re-runs the nightly aggregations for an arbitrary day,
// defaulting to yesterday.
func (h *ReportHandler) GetDailyReports(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC().AddDate(0, 0, -1)
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	summary, err := h.Service.DailyReservationSummary(date)
	if err != nil {
		writeError(w, err)
		return
	}
	utilization, err := h.Service.VehicleUtilization(date)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics, err := h.Service.CustomerMetrics(date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dailyReportsResponse{
		Summary:     summary,
		Utilization: utilization,
		Customers:   metrics,
	})
}

func (h *ReportHandler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "Invalid month", http.StatusBadRequest)
		return
	}

	summary, err := h.Service.MonthlyRevenueSummary(year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
