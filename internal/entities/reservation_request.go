package entities

import "time"

// CustomerInfo carries the inline customer details submitted with a booking.
// An existing customer matched by email or document number is reused instead
// of creating a duplicate row.
type CustomerInfo struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"document_number"`
}

type CreateReservationRequest struct {
	VehicleID    int          `json:"vehicle_id"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	CustomerInfo CustomerInfo `json:"customer_info"`
}

// ReservationSearchRequest filters the admin reservation listing. Zero values
// mean "no filter".
type ReservationSearchRequest struct {
	Status     string
	VehicleID  int
	CustomerID int
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	PageSize   int
}
