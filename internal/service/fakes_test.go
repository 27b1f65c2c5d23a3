package service_test

import (
	"time"

	"rentafacil/internal/db"
	"rentafacil/internal/entities"
	"rentafacil/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeReservationRepo struct {
	nextID       int
	reservations map[int]*db.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{nextID: 1, reservations: map[int]*db.Reservation{}}
}

func (f *fakeReservationRepo) seed(res db.Reservation) *db.Reservation {
	if res.ID == 0 {
		res.ID = f.nextID
	}
	if res.ID >= f.nextID {
		f.nextID = res.ID + 1
	}
	stored := res
	f.reservations[stored.ID] = &stored
	return &stored
}

func (f *fakeReservationRepo) hasConflict(vehicleID int, start, end time.Time, excludeID int) bool {
	for _, r := range f.reservations {
		if r.VehicleID != vehicleID || r.ID == excludeID {
			continue
		}
		if r.ConflictsWith(start, end) {
			return true
		}
	}
	return false
}

func (f *fakeReservationRepo) CreateIfAvailable(res *db.Reservation) (bool, error) {
	if f.hasConflict(res.VehicleID, res.StartDate, res.EndDate, 0) {
		return false, nil
	}
	res.ID = f.nextID
	f.nextID++
	stored := *res
	f.reservations[stored.ID] = &stored
	return true, nil
}

func (f *fakeReservationRepo) HasConflicting(vehicleID int, start, end time.Time, excludeReservationID int) (bool, error) {
	return f.hasConflict(vehicleID, start, end, excludeReservationID), nil
}

func (f *fakeReservationRepo) GetByID(id int) (*db.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, nil
	}
	out := *r
	return &out, nil
}

func (f *fakeReservationRepo) GetByConfirmationNumber(confirmationNumber string) (*db.Reservation, error) {
	for _, r := range f.reservations {
		if r.ConfirmationNumber == confirmationNumber {
			out := *r
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) UpdateStatus(id int, status string) (*db.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, nil
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	out := *r
	return &out, nil
}

func (f *fakeReservationRepo) Search(req entities.ReservationSearchRequest) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, r := range f.reservations {
		if req.Status != "" && r.Status != req.Status {
			continue
		}
		if req.VehicleID != 0 && r.VehicleID != req.VehicleID {
			continue
		}
		if req.CustomerID != 0 && r.CustomerID != req.CustomerID {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReservationRepo) ListByCustomer(customerID int) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, r := range f.reservations {
		if r.CustomerID == customerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) CountByCustomer(customerID int) (int, error) {
	count := 0
	for _, r := range f.reservations {
		if r.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

type fakeCustomerRepo struct {
	nextID    int
	customers map[int]*db.Customer
	// simulateInsertRace makes the next Create lose against a concurrent
	// insert: the row appears under another name and the unique violation
	// sentinel is returned.
	simulateInsertRace bool
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{nextID: 1, customers: map[int]*db.Customer{}}
}

func (f *fakeCustomerRepo) seed(c db.Customer) *db.Customer {
	if c.ID == 0 {
		c.ID = f.nextID
	}
	if c.ID >= f.nextID {
		f.nextID = c.ID + 1
	}
	stored := c
	f.customers[stored.ID] = &stored
	return &stored
}

func (f *fakeCustomerRepo) GetByID(id int) (*db.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (f *fakeCustomerRepo) GetByEmail(email string) (*db.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByDocumentNumber(documentNumber string) (*db.Customer, error) {
	for _, c := range f.customers {
		if c.DocumentNumber == documentNumber {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Create(c *db.Customer) error {
	if f.simulateInsertRace {
		f.simulateInsertRace = false
		winner := *c
		winner.Name = "Concurrent Winner"
		f.seed(winner)
		return repository.ErrDuplicateCustomer
	}
	c.ID = f.nextID
	f.nextID++
	stored := *c
	f.customers[stored.ID] = &stored
	return nil
}

func (f *fakeCustomerRepo) List() ([]db.Customer, error) {
	var out []db.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

type fakeVehicleRepo struct {
	nextID   int
	vehicles map[int]*db.Vehicle
	upcoming map[int]bool
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{nextID: 1, vehicles: map[int]*db.Vehicle{}, upcoming: map[int]bool{}}
}

func (f *fakeVehicleRepo) seed(v db.Vehicle) *db.Vehicle {
	if v.ID == 0 {
		v.ID = f.nextID
	}
	if v.ID >= f.nextID {
		f.nextID = v.ID + 1
	}
	stored := v
	f.vehicles[stored.ID] = &stored
	return &stored
}

func (f *fakeVehicleRepo) GetByID(id int) (*db.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, nil
	}
	out := *v
	return &out, nil
}

func (f *fakeVehicleRepo) Exists(id int) (bool, error) {
	_, ok := f.vehicles[id]
	return ok, nil
}

func (f *fakeVehicleRepo) List() ([]db.Vehicle, error) {
	var out []db.Vehicle
	for _, v := range f.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVehicleRepo) ListAvailable(start, end time.Time, vehicleType string) ([]db.Vehicle, error) {
	var out []db.Vehicle
	for _, v := range f.vehicles {
		if !v.Available {
			continue
		}
		if vehicleType != "" && v.Type != vehicleType {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVehicleRepo) Create(v *db.Vehicle) error {
	v.ID = f.nextID
	f.nextID++
	stored := *v
	f.vehicles[stored.ID] = &stored
	return nil
}

func (f *fakeVehicleRepo) Update(v *db.Vehicle) (bool, error) {
	if _, ok := f.vehicles[v.ID]; !ok {
		return false, nil
	}
	stored := *v
	f.vehicles[stored.ID] = &stored
	return true, nil
}

func (f *fakeVehicleRepo) Delete(id int) (bool, error) {
	if _, ok := f.vehicles[id]; !ok {
		return false, nil
	}
	delete(f.vehicles, id)
	return true, nil
}

func (f *fakeVehicleRepo) HasUpcomingConfirmed(id int) (bool, error) {
	return f.upcoming[id], nil
}

type recordingNotifier struct {
	statuses []string
}

func (n *recordingNotifier) ReservationStatusChanged(res *db.Reservation, vehicle *db.Vehicle, customer *db.Customer, status string) {
	n.statuses = append(n.statuses, status)
}
