package service

import (
	"fmt"
	"time"

	"rentafacil/internal/db"
	"rentafacil/internal/entities"
	apperrors "rentafacil/internal/errors"
	"rentafacil/internal/repository"
)

type VehicleService struct {
	vehicles repository.VehicleRepository
}

func NewVehicleService(vehicles repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

func (s *VehicleService) ListVehicles() ([]entities.VehicleResponse, error) {
	vehicles, err := s.vehicles.List()
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	return toVehicleResponses(vehicles), nil
}

func (s *VehicleService) GetVehicle(id int) (*entities.VehicleResponse, error) {
	vehicle, err := s.vehicles.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error loading vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, apperrors.NewNotFound("vehicle %d not found", id)
	}
	resp := entities.VehicleToResponse(vehicle)
	return &resp, nil
}

// SearchAvailable lists rentable vehicles free over [start, end), optionally
// narrowed to one vehicle type.
func (s *VehicleService) SearchAvailable(start, end time.Time, vehicleType string) ([]entities.VehicleResponse, error) {
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	if vehicleType != "" && !db.ValidVehicleType(vehicleType) {
		return nil, apperrors.NewValidation("unknown vehicle type %q", vehicleType)
	}
	vehicles, err := s.vehicles.ListAvailable(start, end, vehicleType)
	if err != nil {
		return nil, fmt.Errorf("error searching available vehicles: %w", err)
	}
	return toVehicleResponses(vehicles), nil
}

func (s *VehicleService) CreateVehicle(req entities.VehicleRequest) (*entities.VehicleResponse, error) {
	if err := validateVehicleRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	vehicle := &db.Vehicle{
		Type:        req.Type,
		Model:       req.Model,
		Year:        req.Year,
		PricePerDay: req.PricePerDay,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Available != nil {
		vehicle.Available = *req.Available
	}
	if err := s.vehicles.Create(vehicle); err != nil {
		return nil, fmt.Errorf("error creating vehicle: %w", err)
	}
	resp := entities.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *VehicleService) UpdateVehicle(id int, req entities.VehicleRequest) (*entities.VehicleResponse, error) {
	if err := validateVehicleRequest(req); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error loading vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, apperrors.NewNotFound("vehicle %d not found", id)
	}

	vehicle.Type = req.Type
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.PricePerDay = req.PricePerDay
	if req.Available != nil {
		vehicle.Available = *req.Available
	}

	updated, err := s.vehicles.Update(vehicle)
	if err != nil {
		return nil, fmt.Errorf("error updating vehicle: %w", err)
	}
	if !updated {
		return nil, apperrors.NewNotFound("vehicle %d not found", id)
	}
	resp := entities.VehicleToResponse(vehicle)
	return &resp, nil
}

// DeleteVehicle removes a vehicle from the catalog. A vehicle with upcoming
// Confirmed reservations cannot be removed.
func (s *VehicleService) DeleteVehicle(id int) error {
	busy, err := s.vehicles.HasUpcomingConfirmed(id)
	if err != nil {
		return fmt.Errorf("error checking vehicle reservations: %w", err)
	}
	if busy {
		return apperrors.NewDomainRule("vehicle %d has upcoming confirmed reservations", id)
	}

	deleted, err := s.vehicles.Delete(id)
	if err != nil {
		return fmt.Errorf("error deleting vehicle: %w", err)
	}
	if !deleted {
		return apperrors.NewNotFound("vehicle %d not found", id)
	}
	return nil
}

// VehicleExists is the narrow contract the booking core consumes before
// checking availability.
func (s *VehicleService) VehicleExists(id int) (bool, error) {
	return s.vehicles.Exists(id)
}

func validateVehicleRequest(req entities.VehicleRequest) error {
	if !db.ValidVehicleType(req.Type) {
		return apperrors.NewValidation("unknown vehicle type %q", req.Type)
	}
	if req.Model == "" {
		return apperrors.NewValidation("vehicle model is required")
	}
	if req.Year < 1980 || req.Year > time.Now().UTC().Year()+1 {
		return apperrors.NewValidation("vehicle year %d is out of range", req.Year)
	}
	if req.PricePerDay <= 0 {
		return apperrors.NewValidation("price_per_day must be positive")
	}
	return nil
}

func toVehicleResponses(vehicles []db.Vehicle) []entities.VehicleResponse {
	responses := make([]entities.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		responses = append(responses, entities.VehicleToResponse(&vehicles[i]))
	}
	return responses
}
