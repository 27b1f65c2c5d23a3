package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentafacil/internal/db"
	"rentafacil/internal/entities"
	apperrors "rentafacil/internal/errors"
	"rentafacil/internal/service"
)

func TestCreateVehicle(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := service.NewVehicleService(repo)

	resp, err := svc.CreateVehicle(entities.VehicleRequest{
		Type:        db.VehicleTypeCompact,
		Model:       "Chevrolet Spark",
		Year:        2024,
		PricePerDay: 25,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.True(t, resp.Available)
}

func TestCreateVehicleValidation(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := service.NewVehicleService(repo)

	tests := []struct {
		name string
		req  entities.VehicleRequest
	}{
		{"unknown type", entities.VehicleRequest{Type: "Truck", Model: "F-150", Year: 2024, PricePerDay: 80}},
		{"empty model", entities.VehicleRequest{Type: db.VehicleTypeSUV, Model: "", Year: 2024, PricePerDay: 80}},
		{"year too old", entities.VehicleRequest{Type: db.VehicleTypeSUV, Model: "Lada", Year: 1975, PricePerDay: 80}},
		{"non-positive price", entities.VehicleRequest{Type: db.VehicleTypeSUV, Model: "RAV4", Year: 2024, PricePerDay: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateVehicle(tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestUpdateVehicleNotFound(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := service.NewVehicleService(repo)

	_, err := svc.UpdateVehicle(7, entities.VehicleRequest{
		Type: db.VehicleTypeSedan, Model: "Civic", Year: 2022, PricePerDay: 40,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteVehicle(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := service.NewVehicleService(repo)
	vehicle := repo.seed(db.Vehicle{Type: db.VehicleTypeSedan, Model: "Civic", Year: 2022, PricePerDay: 40, Available: true})

	require.NoError(t, svc.DeleteVehicle(vehicle.ID))

	err := svc.DeleteVehicle(vehicle.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteVehicleWithUpcomingReservations(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := service.NewVehicleService(repo)
	vehicle := repo.seed(db.Vehicle{Type: db.VehicleTypeSUV, Model: "RAV4", Year: 2023, PricePerDay: 50, Available: true})
	repo.upcoming[vehicle.ID] = true

	err := svc.DeleteVehicle(vehicle.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsDomainRule(err))

	exists, _ := repo.Exists(vehicle.ID)
	assert.True(t, exists)
}

func TestSearchAvailableValidation(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := service.NewVehicleService(repo)

	_, err := svc.SearchAvailable(futureDay(10), futureDay(5), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.SearchAvailable(futureDay(5), futureDay(10), "Motorcycle")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSearchAvailableFiltersByType(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := service.NewVehicleService(repo)
	repo.seed(db.Vehicle{Type: db.VehicleTypeSUV, Model: "RAV4", Year: 2023, PricePerDay: 50, Available: true})
	repo.seed(db.Vehicle{Type: db.VehicleTypeSedan, Model: "Civic", Year: 2022, PricePerDay: 40, Available: true})
	repo.seed(db.Vehicle{Type: db.VehicleTypeSedan, Model: "Corolla", Year: 2021, PricePerDay: 38, Available: false})

	results, err := svc.SearchAvailable(futureDay(5), futureDay(10), db.VehicleTypeSedan)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Civic", results[0].Model)
}
