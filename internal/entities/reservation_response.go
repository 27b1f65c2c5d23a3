package entities

import (
	"time"

	"rentafacil/internal/db"
)

type ReservationResponse struct {
	ID                 int               `json:"id"`
	ConfirmationNumber string            `json:"confirmation_number"`
	VehicleID          int               `json:"vehicle_id"`
	CustomerID         int               `json:"customer_id"`
	StartDate          time.Time         `json:"start_date"`
	EndDate            time.Time         `json:"end_date"`
	TotalPrice         float64           `json:"total_price"`
	Status             string            `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
	Vehicle            *VehicleResponse  `json:"vehicle,omitempty"`
	Customer           *CustomerResponse `json:"customer,omitempty"`
}

// ReservationToResponse is the single mapping point between the persistence
// model and the wire shape.
func ReservationToResponse(r *db.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                 r.ID,
		ConfirmationNumber: r.ConfirmationNumber,
		VehicleID:          r.VehicleID,
		CustomerID:         r.CustomerID,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		TotalPrice:         r.TotalPrice,
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}
