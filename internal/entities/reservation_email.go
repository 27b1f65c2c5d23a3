package entities

// ReservationEmailData feeds the reservation status email template.
type ReservationEmailData struct {
	CustomerName       string
	ConfirmationNumber string
	VehicleModel       string
	VehicleType        string
	StartDateFormatted string
	EndDateFormatted   string
	TotalPrice         float64
	Status             string
	CurrentYear        int
}
