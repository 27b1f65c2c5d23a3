package entities

import (
	"time"

	"rentafacil/internal/db"
)

type VehicleRequest struct {
	Type        string  `json:"type"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	PricePerDay float64 `json:"price_per_day"`
	Available   *bool   `json:"available,omitempty"`
}

type VehicleResponse struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	PricePerDay float64   `json:"price_per_day"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func VehicleToResponse(v *db.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.ID,
		Type:        v.Type,
		Model:       v.Model,
		Year:        v.Year,
		PricePerDay: v.PricePerDay,
		Available:   v.Available,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
