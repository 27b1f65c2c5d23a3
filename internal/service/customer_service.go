package service

import (
	"fmt"

	"rentafacil/internal/entities"
	apperrors "rentafacil/internal/errors"
	"rentafacil/internal/repository"
)

type CustomerService struct {
	customers    repository.CustomerRepository
	reservations repository.ReservationRepository
}

func NewCustomerService(customers repository.CustomerRepository, reservations repository.ReservationRepository) *CustomerService {
	return &CustomerService{customers: customers, reservations: reservations}
}

func (s *CustomerService) ListCustomers() ([]entities.CustomerResponse, error) {
	customers, err := s.customers.List()
	if err != nil {
		return nil, fmt.Errorf("error listing customers: %w", err)
	}

	responses := make([]entities.CustomerResponse, 0, len(customers))
	for i := range customers {
		count, err := s.reservations.CountByCustomer(customers[i].ID)
		if err != nil {
			return nil, fmt.Errorf("error counting reservations for customer %d: %w", customers[i].ID, err)
		}
		responses = append(responses, entities.CustomerToResponse(&customers[i], count))
	}
	return responses, nil
}

func (s *CustomerService) GetCustomer(id int) (*entities.CustomerResponse, error) {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error loading customer: %w", err)
	}
	if customer == nil {
		return nil, apperrors.NewNotFound("customer %d not found", id)
	}

	count, err := s.reservations.CountByCustomer(id)
	if err != nil {
		return nil, fmt.Errorf("error counting reservations for customer %d: %w", id, err)
	}
	resp := entities.CustomerToResponse(customer, count)
	return &resp, nil
}

func (s *CustomerService) GetCustomerReservations(id int) ([]entities.ReservationResponse, error) {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error loading customer: %w", err)
	}
	if customer == nil {
		return nil, apperrors.NewNotFound("customer %d not found", id)
	}

	reservations, err := s.reservations.ListByCustomer(id)
	if err != nil {
		return nil, fmt.Errorf("error listing customer reservations: %w", err)
	}
	responses := make([]entities.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, entities.ReservationToResponse(&reservations[i]))
	}
	return responses, nil
}
