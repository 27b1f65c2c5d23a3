package entities

import "time"

type AvailabilityRequest struct {
	VehicleID            int       `json:"vehicle_id"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	ExcludeReservationID int       `json:"exclude_reservation_id,omitempty"`
}

type AvailabilityResponse struct {
	VehicleID          int       `json:"vehicle_id"`
	RequestedStartDate time.Time `json:"requested_start_date"`
	RequestedEndDate   time.Time `json:"requested_end_date"`
	Available          bool      `json:"available"`
}
