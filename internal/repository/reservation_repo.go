package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"rentafacil/internal/db"
	"rentafacil/internal/entities"
)

// ReservationRepository is the persistence contract the booking service
// consumes. Get methods return (nil, nil) when no row matches.
type ReservationRepository interface {
	// CreateIfAvailable inserts the reservation only when no Confirmed
	// reservation conflicts with its interval. The conflict check and the
	// insert run in one transaction holding a row lock on the vehicle, so
	// two concurrent bookings for the same vehicle cannot both pass the
	// check. Returns false when a conflict was found.
	CreateIfAvailable(res *db.Reservation) (bool, error)
	HasConflicting(vehicleID int, start, end time.Time, excludeReservationID int) (bool, error)
	GetByID(id int) (*db.Reservation, error)
	GetByConfirmationNumber(confirmationNumber string) (*db.Reservation, error)
	UpdateStatus(id int, status string) (*db.Reservation, error)
	Search(req entities.ReservationSearchRequest) ([]db.Reservation, error)
	ListByCustomer(customerID int) ([]db.Reservation, error)
	CountByCustomer(customerID int) (int, error)
}

type PostgresReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *PostgresReservationRepository {
	return &PostgresReservationRepository{DB: database}
}

const reservationColumns = `id, confirmation_number, vehicle_id, customer_id, start_date, end_date, total_price, status, created_at, updated_at`

// Two half-open intervals [s1,e1) and [s2,e2) overlap iff s1 < e2 AND s2 < e1.
// Back-to-back reservations therefore never conflict, and only Confirmed rows
// participate: a Pending hold must not starve other customers.
const conflictCondition = `
		vehicle_id = $1
		AND status = '` + db.StatusConfirmed + `'
		AND start_date < $3
		AND end_date > $2
		AND ($4 = 0 OR id <> $4)`

func (r *PostgresReservationRepository) CreateIfAvailable(res *db.Reservation) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, fmt.Errorf("error starting reservation transaction: %w", err)
	}
	defer tx.Rollback()

	// Serialize bookings per vehicle for the duration of the check + insert.
	var vehicleID int
	err = tx.QueryRow(`SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, res.VehicleID).Scan(&vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("vehicle %d not found: %w", res.VehicleID, err)
		}
		return false, fmt.Errorf("error locking vehicle %d: %w", res.VehicleID, err)
	}

	var conflicts int
	err = tx.QueryRow(`SELECT COUNT(id) FROM reservations WHERE`+conflictCondition,
		res.VehicleID, res.StartDate, res.EndDate, 0).Scan(&conflicts)
	if err != nil {
		return false, fmt.Errorf("error checking reservation conflicts: %w", err)
	}
	if conflicts > 0 {
		return false, nil
	}

	err = tx.QueryRow(`
		INSERT INTO reservations
		(confirmation_number, vehicle_id, customer_id, start_date, end_date, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		res.ConfirmationNumber, res.VehicleID, res.CustomerID, res.StartDate, res.EndDate,
		res.TotalPrice, res.Status, res.CreatedAt, res.UpdatedAt,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("error inserting reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing reservation transaction: %w", err)
	}
	return true, nil
}

func (r *PostgresReservationRepository) HasConflicting(vehicleID int, start, end time.Time, excludeReservationID int) (bool, error) {
	var conflicts int
	err := r.DB.QueryRow(`SELECT COUNT(id) FROM reservations WHERE`+conflictCondition,
		vehicleID, start, end, excludeReservationID).Scan(&conflicts)
	if err != nil {
		return false, fmt.Errorf("error checking reservation conflicts: %w", err)
	}
	return conflicts > 0, nil
}

func (r *PostgresReservationRepository) GetByID(id int) (*db.Reservation, error) {
	return r.getOne(`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
}

func (r *PostgresReservationRepository) GetByConfirmationNumber(confirmationNumber string) (*db.Reservation, error) {
	return r.getOne(`SELECT `+reservationColumns+` FROM reservations WHERE confirmation_number = $1`, confirmationNumber)
}

func (r *PostgresReservationRepository) getOne(query string, arg any) (*db.Reservation, error) {
	var res db.Reservation
	err := r.DB.QueryRow(query, arg).Scan(
		&res.ID, &res.ConfirmationNumber, &res.VehicleID, &res.CustomerID,
		&res.StartDate, &res.EndDate, &res.TotalPrice, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return &res, nil
}

func (r *PostgresReservationRepository) UpdateStatus(id int, status string) (*db.Reservation, error) {
	var res db.Reservation
	err := r.DB.QueryRow(`
		UPDATE reservations SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+reservationColumns,
		status, id,
	).Scan(
		&res.ID, &res.ConfirmationNumber, &res.VehicleID, &res.CustomerID,
		&res.StartDate, &res.EndDate, &res.TotalPrice, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating reservation status: %w", err)
	}
	return &res, nil
}

func (r *PostgresReservationRepository) Search(req entities.ReservationSearchRequest) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	var args []any

	if req.Status != "" {
		args = append(args, req.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if req.VehicleID != 0 {
		args = append(args, req.VehicleID)
		query += ` AND vehicle_id = $` + strconv.Itoa(len(args))
	}
	if req.CustomerID != 0 {
		args = append(args, req.CustomerID)
		query += ` AND customer_id = $` + strconv.Itoa(len(args))
	}
	if req.StartDate != nil && req.EndDate != nil {
		args = append(args, *req.EndDate)
		query += ` AND start_date <= $` + strconv.Itoa(len(args))
		args = append(args, *req.StartDate)
		query += ` AND end_date >= $` + strconv.Itoa(len(args))
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	args = append(args, pageSize)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, (page-1)*pageSize)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	return r.list(query, args...)
}

func (r *PostgresReservationRepository) ListByCustomer(customerID int) ([]db.Reservation, error) {
	return r.list(`SELECT `+reservationColumns+` FROM reservations WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (r *PostgresReservationRepository) CountByCustomer(customerID int) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(id) FROM reservations WHERE customer_id = $1`, customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting customer reservations: %w", err)
	}
	return count, nil
}

func (r *PostgresReservationRepository) list(query string, args ...any) ([]db.Reservation, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(
			&res.ID, &res.ConfirmationNumber, &res.VehicleID, &res.CustomerID,
			&res.StartDate, &res.EndDate, &res.TotalPrice, &res.Status,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}
