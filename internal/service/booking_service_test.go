package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentafacil/internal/db"
	"rentafacil/internal/entities"
	apperrors "rentafacil/internal/errors"
	"rentafacil/internal/service"
)

// futureDay returns UTC midnight n days from today, so tests never trip the
// start-date-in-the-past validation.
func futureDay(n int) time.Time {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, n)
}

type bookingFixture struct {
	reservations *fakeReservationRepo
	customers    *fakeCustomerRepo
	vehicles     *fakeVehicleRepo
	notifier     *recordingNotifier
	svc          *service.BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		reservations: newFakeReservationRepo(),
		customers:    newFakeCustomerRepo(),
		vehicles:     newFakeVehicleRepo(),
		notifier:     &recordingNotifier{},
	}
	f.svc = service.NewBookingService(f.reservations, f.customers, f.vehicles, f.notifier)
	return f
}

func (f *bookingFixture) seedVehicle() *db.Vehicle {
	return f.vehicles.seed(db.Vehicle{
		Type:        db.VehicleTypeSUV,
		Model:       "Toyota RAV4",
		Year:        2023,
		PricePerDay: 50,
		Available:   true,
	})
}

func validCustomerInfo() entities.CustomerInfo {
	return entities.CustomerInfo{
		Name:           "Maria Gomez",
		Email:          "maria@example.com",
		Phone:          "+573001234567",
		DocumentNumber: "CC-1029384756",
	}
}

func TestCreateReservation(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()

	resp, err := f.svc.CreateReservation(entities.CreateReservationRequest{
		VehicleID:    vehicle.ID,
		StartDate:    futureDay(5),
		EndDate:      futureDay(10),
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)

	assert.Equal(t, db.StatusPending, resp.Status)
	assert.Equal(t, 250.0, resp.TotalPrice)
	assert.True(t, strings.HasPrefix(resp.ConfirmationNumber, "RF"))
	assert.Len(t, resp.ConfirmationNumber, 14)
	require.NotNil(t, resp.Vehicle)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "maria@example.com", resp.Customer.Email)

	stored, err := f.reservations.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, db.StatusPending, stored.Status)
}

func TestCreateReservationValidation(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()

	tests := []struct {
		name string
		req  entities.CreateReservationRequest
	}{
		{
			"end before start",
			entities.CreateReservationRequest{
				VehicleID: vehicle.ID, StartDate: futureDay(10), EndDate: futureDay(5),
				CustomerInfo: validCustomerInfo(),
			},
		},
		{
			"zero-length range",
			entities.CreateReservationRequest{
				VehicleID: vehicle.ID, StartDate: futureDay(5), EndDate: futureDay(5),
				CustomerInfo: validCustomerInfo(),
			},
		},
		{
			"start in the past",
			entities.CreateReservationRequest{
				VehicleID: vehicle.ID, StartDate: futureDay(-3), EndDate: futureDay(2),
				CustomerInfo: validCustomerInfo(),
			},
		},
		{
			"missing customer email",
			entities.CreateReservationRequest{
				VehicleID: vehicle.ID, StartDate: futureDay(5), EndDate: futureDay(10),
				CustomerInfo: entities.CustomerInfo{Name: "Maria", Phone: "+57300", DocumentNumber: "CC-1"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateReservation(tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestCreateReservationVehicleNotFound(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.CreateReservation(entities.CreateReservationRequest{
		VehicleID:    42,
		StartDate:    futureDay(5),
		EndDate:      futureDay(10),
		CustomerInfo: validCustomerInfo(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateReservationVehicleNotRentable(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.vehicles.seed(db.Vehicle{
		Type: db.VehicleTypeSedan, Model: "Honda Civic", Year: 2022,
		PricePerDay: 40, Available: false,
	})

	_, err := f.svc.CreateReservation(entities.CreateReservationRequest{
		VehicleID:    vehicle.ID,
		StartDate:    futureDay(5),
		EndDate:      futureDay(10),
		CustomerInfo: validCustomerInfo(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsDomainRule(err))
}

func TestCreateReservationConflict(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606011111",
		VehicleID:          vehicle.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusConfirmed,
	})

	_, err := f.svc.CreateReservation(entities.CreateReservationRequest{
		VehicleID:    vehicle.ID,
		StartDate:    futureDay(7),
		EndDate:      futureDay(12),
		CustomerInfo: validCustomerInfo(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsDomainRule(err))
}

func TestCreateReservationAdjacentIntervalSucceeds(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606011111",
		VehicleID:          vehicle.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusConfirmed,
	})

	resp, err := f.svc.CreateReservation(entities.CreateReservationRequest{
		VehicleID:    vehicle.ID,
		StartDate:    futureDay(10),
		EndDate:      futureDay(15),
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)
	assert.Equal(t, db.StatusPending, resp.Status)
}

func TestCreateReservationReusesExistingCustomer(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	existing := f.customers.seed(db.Customer{
		Name:           "Maria Gomez",
		Email:          "maria@example.com",
		Phone:          "+573001234567",
		DocumentNumber: "CC-1029384756",
	})

	resp, err := f.svc.CreateReservation(entities.CreateReservationRequest{
		VehicleID:    vehicle.ID,
		StartDate:    futureDay(5),
		EndDate:      futureDay(10),
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.CustomerID)

	customers, err := f.customers.List()
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestCreateReservationCustomerInsertRace(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	f.customers.simulateInsertRace = true

	resp, err := f.svc.CreateReservation(entities.CreateReservationRequest{
		VehicleID:    vehicle.ID,
		StartDate:    futureDay(5),
		EndDate:      futureDay(10),
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)

	// The reservation must attach to the row the concurrent insert won with.
	winner, lookupErr := f.customers.GetByEmail("maria@example.com")
	require.NoError(t, lookupErr)
	require.NotNil(t, winner)
	assert.Equal(t, winner.ID, resp.CustomerID)

	customers, err := f.customers.List()
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestCheckAvailability(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606011111",
		VehicleID:          vehicle.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusConfirmed,
	})

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		available bool
	}{
		{"overlapping", futureDay(7), futureDay(12), false},
		{"adjacent after", futureDay(10), futureDay(15), true},
		{"adjacent before", futureDay(1), futureDay(5), true},
		{"entirely before", futureDay(1), futureDay(4), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.CheckAvailability(entities.AvailabilityRequest{
				VehicleID: vehicle.ID,
				StartDate: tt.start,
				EndDate:   tt.end,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.available, resp.Available)
		})
	}
}

func TestCheckAvailabilityPendingDoesNotBlock(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606012222",
		VehicleID:          vehicle.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusPending,
	})

	resp, err := f.svc.CheckAvailability(entities.AvailabilityRequest{
		VehicleID: vehicle.ID,
		StartDate: futureDay(6),
		EndDate:   futureDay(9),
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestCheckAvailabilityExcludesOwnReservation(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	res := f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606013333",
		VehicleID:          vehicle.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusConfirmed,
	})

	blocked, err := f.svc.CheckAvailability(entities.AvailabilityRequest{
		VehicleID: vehicle.ID,
		StartDate: futureDay(6),
		EndDate:   futureDay(9),
	})
	require.NoError(t, err)
	assert.False(t, blocked.Available)

	excluded, err := f.svc.CheckAvailability(entities.AvailabilityRequest{
		VehicleID:            vehicle.ID,
		StartDate:            futureDay(6),
		EndDate:              futureDay(9),
		ExcludeReservationID: res.ID,
	})
	require.NoError(t, err)
	assert.True(t, excluded.Available)
}

func TestCheckAvailabilityUnknownVehicle(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.CheckAvailability(entities.AvailabilityRequest{
		VehicleID: 99,
		StartDate: futureDay(5),
		EndDate:   futureDay(10),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConfirmReservation(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	customer := f.customers.seed(db.Customer{Name: "Maria", Email: "maria@example.com", Phone: "+57300", DocumentNumber: "CC-1"})
	res := f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606014444",
		VehicleID:          vehicle.ID,
		CustomerID:         customer.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusPending,
	})

	resp, err := f.svc.ConfirmReservation(res.ID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusConfirmed, resp.Status)
	assert.Equal(t, []string{db.StatusConfirmed}, f.notifier.statuses)

	// Confirming twice breaks the state machine.
	_, err = f.svc.ConfirmReservation(res.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsDomainRule(err))
	assert.Len(t, f.notifier.statuses, 1)
}

func TestConfirmReservationNotFound(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.ConfirmReservation(404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCancelReservation(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	customer := f.customers.seed(db.Customer{Name: "Maria", Email: "maria@example.com", Phone: "+57300", DocumentNumber: "CC-1"})
	res := f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606015555",
		VehicleID:          vehicle.ID,
		CustomerID:         customer.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusConfirmed,
	})

	resp, err := f.svc.CancelReservation(res.ID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCancelled, resp.Status)
	assert.Equal(t, []string{db.StatusCancelled}, f.notifier.statuses)
}

func TestCancelReservationAfterStart(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	res := f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606016666",
		VehicleID:          vehicle.ID,
		StartDate:          time.Now().UTC().Add(-24 * time.Hour),
		EndDate:            futureDay(3),
		Status:             db.StatusConfirmed,
	})

	_, err := f.svc.CancelReservation(res.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsDomainRule(err))

	stored, _ := f.reservations.GetByID(res.ID)
	assert.Equal(t, db.StatusConfirmed, stored.Status)
}

func TestCancelPendingReservation(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	res := f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606017777",
		VehicleID:          vehicle.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusPending,
	})

	_, err := f.svc.CancelReservation(res.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsDomainRule(err))
}

func TestGetReservationByConfirmationNumber(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()
	f.reservations.seed(db.Reservation{
		ConfirmationNumber: "RF202606018888",
		VehicleID:          vehicle.ID,
		StartDate:          futureDay(5),
		EndDate:            futureDay(10),
		Status:             db.StatusConfirmed,
	})

	resp, err := f.svc.GetReservationByConfirmationNumber("RF202606018888")
	require.NoError(t, err)
	assert.Equal(t, "RF202606018888", resp.ConfirmationNumber)

	_, err = f.svc.GetReservationByConfirmationNumber("RF000000000000")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

// TestBookingLifecycle walks a reservation from creation through confirmation
// and checks the vehicle is blocked only while the booking holds it.
func TestBookingLifecycle(t *testing.T) {
	f := newBookingFixture()
	vehicle := f.seedVehicle()

	created, err := f.svc.CreateReservation(entities.CreateReservationRequest{
		VehicleID:    vehicle.ID,
		StartDate:    futureDay(5),
		EndDate:      futureDay(10),
		CustomerInfo: validCustomerInfo(),
	})
	require.NoError(t, err)
	assert.Equal(t, db.StatusPending, created.Status)

	// A pending hold does not block other bookings yet.
	avail, err := f.svc.CheckAvailability(entities.AvailabilityRequest{
		VehicleID: vehicle.ID, StartDate: futureDay(6), EndDate: futureDay(9),
	})
	require.NoError(t, err)
	assert.True(t, avail.Available)

	confirmed, err := f.svc.ConfirmReservation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusConfirmed, confirmed.Status)

	avail, err = f.svc.CheckAvailability(entities.AvailabilityRequest{
		VehicleID: vehicle.ID, StartDate: futureDay(6), EndDate: futureDay(9),
	})
	require.NoError(t, err)
	assert.False(t, avail.Available)

	cancelled, err := f.svc.CancelReservation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCancelled, cancelled.Status)

	avail, err = f.svc.CheckAvailability(entities.AvailabilityRequest{
		VehicleID: vehicle.ID, StartDate: futureDay(6), EndDate: futureDay(9),
	})
	require.NoError(t, err)
	assert.True(t, avail.Available)
}
