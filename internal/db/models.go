package db

import (
	"fmt"
	"math/rand"
	"time"

	apperrors "rentafacil/internal/errors"
)

// Reservation lifecycle statuses. Pending is the initial state; Completed is
// set by the worker sweep once the rental period has elapsed.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

// Vehicle types offered by the catalog.
const (
	VehicleTypeSUV     = "SUV"
	VehicleTypeSedan   = "Sedan"
	VehicleTypeCompact = "Compact"
)

const confirmationPrefix = "RF"

type Vehicle struct {
	ID          int
	Type        string
	Model       string
	Year        int
	PricePerDay float64
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Customer struct {
	ID             int
	Name           string
	Email          string
	Phone          string
	DocumentNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Reservation struct {
	ID                 int
	ConfirmationNumber string
	VehicleID          int
	CustomerID         int
	StartDate          time.Time
	EndDate            time.Time
	TotalPrice         float64
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DurationDays returns the rental length in whole days, never less than one.
func (r *Reservation) DurationDays() int {
	days := int(r.EndDate.Sub(r.StartDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

// ConflictsWith reports whether a Confirmed reservation occupies any part of
// the half-open candidate interval [start, end). Adjacent reservations (one
// ending exactly when the other starts) do not conflict. Non-Confirmed
// reservations never block a booking.
func (r *Reservation) ConflictsWith(start, end time.Time) bool {
	if r.Status != StatusConfirmed {
		return false
	}
	return r.StartDate.Before(end) && r.EndDate.After(start)
}

func (r *Reservation) IsActive() bool {
	now := time.Now().UTC()
	return r.Status == StatusConfirmed && !r.StartDate.After(now) && r.EndDate.After(now)
}

// CanBeCancelled is true only for Confirmed reservations that have not
// started yet. A rental already in progress cannot be walked back.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed && r.StartDate.After(time.Now().UTC())
}

// Confirm moves a Pending reservation to Confirmed.
func (r *Reservation) Confirm() error {
	if r.Status != StatusPending {
		return apperrors.NewDomainRule("only pending reservations can be confirmed, current status is %s", r.Status)
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel moves a future Confirmed reservation to Cancelled.
func (r *Reservation) Cancel() error {
	if !r.CanBeCancelled() {
		return apperrors.NewDomainRule("reservation %s cannot be cancelled", r.ConfirmationNumber)
	}
	r.Status = StatusCancelled
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// GenerateConfirmationNumber builds the customer-facing reservation code:
// RF + UTC date + 4-digit random suffix, e.g. RF202506051234. The suffix is
// not guaranteed collision-free at scale.
func GenerateConfirmationNumber() string {
	return fmt.Sprintf("%s%s%04d", confirmationPrefix, time.Now().UTC().Format("20060102"), 1000+rand.Intn(9000))
}

// ValidVehicleType reports whether t is one of the catalog types.
func ValidVehicleType(t string) bool {
	switch t {
	case VehicleTypeSUV, VehicleTypeSedan, VehicleTypeCompact:
		return true
	}
	return false
}
