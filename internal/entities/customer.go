package entities

import (
	"time"

	"rentafacil/internal/db"
)

type CustomerResponse struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	DocumentNumber    string    `json:"document_number"`
	TotalReservations int       `json:"total_reservations"`
	CreatedAt         time.Time `json:"created_at"`
}

func CustomerToResponse(c *db.Customer, totalReservations int) CustomerResponse {
	return CustomerResponse{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		DocumentNumber:    c.DocumentNumber,
		TotalReservations: totalReservations,
		CreatedAt:         c.CreatedAt,
	}
}
