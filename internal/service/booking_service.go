package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"rentafacil/internal/db"
	"rentafacil/internal/entities"
	apperrors "rentafacil/internal/errors"
	"rentafacil/internal/repository"
)

// Notifier delivers reservation status notices to the customer. Delivery is
// best effort and never fails the booking operation.
type Notifier interface {
	ReservationStatusChanged(res *db.Reservation, vehicle *db.Vehicle, customer *db.Customer, status string)
}

type BookingService struct {
	reservations repository.ReservationRepository
	customers    repository.CustomerRepository
	vehicles     repository.VehicleRepository
	notifier     Notifier
}

func NewBookingService(
	reservations repository.ReservationRepository,
	customers repository.CustomerRepository,
	vehicles repository.VehicleRepository,
	notifier Notifier,
) *BookingService {
	return &BookingService{
		reservations: reservations,
		customers:    customers,
		vehicles:     vehicles,
		notifier:     notifier,
	}
}

// CheckAvailability reports whether the vehicle can be booked over
// [StartDate, EndDate). ExcludeReservationID omits a reservation from the
// conflict set, so an edited reservation does not conflict with itself.
func (s *BookingService) CheckAvailability(req entities.AvailabilityRequest) (*entities.AvailabilityResponse, error) {
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	exists, err := s.vehicles.Exists(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("error checking vehicle existence: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("vehicle %d not found", req.VehicleID)
	}

	conflicting, err := s.reservations.HasConflicting(req.VehicleID, req.StartDate, req.EndDate, req.ExcludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("error checking availability: %w", err)
	}

	return &entities.AvailabilityResponse{
		VehicleID:          req.VehicleID,
		RequestedStartDate: req.StartDate,
		RequestedEndDate:   req.EndDate,
		Available:          !conflicting,
	}, nil
}

// CreateReservation validates the request, resolves the customer, prices the
// rental and persists a Pending reservation if the vehicle is free. The
// availability check and the insert run in a single transaction at the
// repository, so a concurrent booking cannot slip in between them.
func (s *BookingService) CreateReservation(req entities.CreateReservationRequest) (*entities.ReservationResponse, error) {
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if err := validateStartNotPast(req.StartDate); err != nil {
		return nil, err
	}
	if err := validateCustomerInfo(req.CustomerInfo); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("error loading vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, apperrors.NewNotFound("vehicle %d not found", req.VehicleID)
	}
	if !vehicle.Available {
		return nil, apperrors.NewDomainRule("vehicle %d is not open for rental", vehicle.ID)
	}

	customer, err := s.findOrCreateCustomer(req.CustomerInfo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reservation := &db.Reservation{
		ConfirmationNumber: db.GenerateConfirmationNumber(),
		VehicleID:          vehicle.ID,
		CustomerID:         customer.ID,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Status:             db.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	reservation.TotalPrice = float64(reservation.DurationDays()) * vehicle.PricePerDay
	if reservation.TotalPrice <= 0 {
		return nil, apperrors.NewValidation("total price must be positive, vehicle %d has no daily price", vehicle.ID)
	}

	created, err := s.reservations.CreateIfAvailable(reservation)
	if err != nil {
		return nil, fmt.Errorf("error creating reservation: %w", err)
	}
	if !created {
		return nil, apperrors.NewDomainRule("vehicle %d is not available for the selected dates", vehicle.ID)
	}

	log.Printf("Created reservation %s for vehicle %d (%s - %s)",
		reservation.ConfirmationNumber, vehicle.ID,
		reservation.StartDate.Format("2006-01-02"), reservation.EndDate.Format("2006-01-02"))

	resp := entities.ReservationToResponse(reservation)
	vehicleResp := entities.VehicleToResponse(vehicle)
	customerResp := entities.CustomerToResponse(customer, 0)
	resp.Vehicle = &vehicleResp
	resp.Customer = &customerResp
	return &resp, nil
}

// ConfirmReservation moves a Pending reservation to Confirmed and notifies
// the customer.
func (s *BookingService) ConfirmReservation(id int) (*entities.ReservationResponse, error) {
	return s.transition(id, func(res *db.Reservation) error { return res.Confirm() })
}

// CancelReservation cancels a Confirmed reservation that has not started yet.
func (s *BookingService) CancelReservation(id int) (*entities.ReservationResponse, error) {
	return s.transition(id, func(res *db.Reservation) error { return res.Cancel() })
}

func (s *BookingService) transition(id int, apply func(*db.Reservation) error) (*entities.ReservationResponse, error) {
	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error loading reservation: %w", err)
	}
	if reservation == nil {
		return nil, apperrors.NewNotFound("reservation %d not found", id)
	}

	if err := apply(reservation); err != nil {
		return nil, err
	}

	updated, err := s.reservations.UpdateStatus(reservation.ID, reservation.Status)
	if err != nil {
		return nil, fmt.Errorf("error persisting reservation status: %w", err)
	}
	if updated == nil {
		return nil, apperrors.NewNotFound("reservation %d not found", id)
	}

	log.Printf("Reservation %s is now %s", updated.ConfirmationNumber, updated.Status)
	s.notifyStatus(updated)

	resp := entities.ReservationToResponse(updated)
	return &resp, nil
}

func (s *BookingService) notifyStatus(res *db.Reservation) {
	if s.notifier == nil {
		return
	}
	vehicle, err := s.vehicles.GetByID(res.VehicleID)
	if err != nil || vehicle == nil {
		log.Printf("Skipping notification for reservation %s: vehicle %d unavailable: %v", res.ConfirmationNumber, res.VehicleID, err)
		return
	}
	customer, err := s.customers.GetByID(res.CustomerID)
	if err != nil || customer == nil {
		log.Printf("Skipping notification for reservation %s: customer %d unavailable: %v", res.ConfirmationNumber, res.CustomerID, err)
		return
	}
	s.notifier.ReservationStatusChanged(res, vehicle, customer, res.Status)
}

func (s *BookingService) GetReservationByConfirmationNumber(confirmationNumber string) (*entities.ReservationResponse, error) {
	reservation, err := s.reservations.GetByConfirmationNumber(confirmationNumber)
	if err != nil {
		return nil, fmt.Errorf("error loading reservation: %w", err)
	}
	if reservation == nil {
		return nil, apperrors.NewNotFound("reservation %s not found", confirmationNumber)
	}
	resp := entities.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *BookingService) SearchReservations(req entities.ReservationSearchRequest) ([]entities.ReservationResponse, error) {
	reservations, err := s.reservations.Search(req)
	if err != nil {
		return nil, fmt.Errorf("error searching reservations: %w", err)
	}
	responses := make([]entities.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, entities.ReservationToResponse(&reservations[i]))
	}
	return responses, nil
}

// findOrCreateCustomer reuses an existing customer matched by email, then by
// document number, and only inserts when neither matches. A concurrent insert
// of the same customer surfaces as a unique violation, which is resolved by
// retrying the lookup.
func (s *BookingService) findOrCreateCustomer(info entities.CustomerInfo) (*db.Customer, error) {
	customer, err := s.customers.GetByEmail(info.Email)
	if err != nil {
		return nil, fmt.Errorf("error looking up customer by email: %w", err)
	}
	if customer != nil {
		return customer, nil
	}

	customer, err = s.customers.GetByDocumentNumber(info.DocumentNumber)
	if err != nil {
		return nil, fmt.Errorf("error looking up customer by document: %w", err)
	}
	if customer != nil {
		return customer, nil
	}

	now := time.Now().UTC()
	newCustomer := &db.Customer{
		Name:           info.Name,
		Email:          info.Email,
		Phone:          info.Phone,
		DocumentNumber: info.DocumentNumber,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = s.customers.Create(newCustomer)
	if err == nil {
		return newCustomer, nil
	}
	if !errors.Is(err, repository.ErrDuplicateCustomer) {
		return nil, fmt.Errorf("error creating customer: %w", err)
	}

	// Lost the insert race; the row exists now.
	customer, lookupErr := s.customers.GetByEmail(info.Email)
	if lookupErr != nil {
		return nil, fmt.Errorf("error re-looking up customer by email: %w", lookupErr)
	}
	if customer != nil {
		return customer, nil
	}
	customer, lookupErr = s.customers.GetByDocumentNumber(info.DocumentNumber)
	if lookupErr != nil {
		return nil, fmt.Errorf("error re-looking up customer by document: %w", lookupErr)
	}
	if customer != nil {
		return customer, nil
	}
	return nil, fmt.Errorf("customer insert conflicted but no matching row found: %w", err)
}

func validateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperrors.NewValidation("start_date and end_date are required")
	}
	if !end.After(start) {
		return apperrors.NewValidation("end_date must be after start_date")
	}
	return nil
}

func validateStartNotPast(start time.Time) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return apperrors.NewValidation("start_date cannot be in the past")
	}
	return nil
}

func validateCustomerInfo(info entities.CustomerInfo) error {
	if info.Name == "" || info.Email == "" || info.Phone == "" || info.DocumentNumber == "" {
		return apperrors.NewValidation("customer name, email, phone and document_number are required")
	}
	return nil
}
