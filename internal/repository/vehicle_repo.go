package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"rentafacil/internal/db"
)

type VehicleRepository interface {
	GetByID(id int) (*db.Vehicle, error)
	Exists(id int) (bool, error)
	List() ([]db.Vehicle, error)
	// ListAvailable returns vehicles flagged available with no Confirmed
	// reservation overlapping [start, end). vehicleType narrows the search
	// when non-empty.
	ListAvailable(start, end time.Time, vehicleType string) ([]db.Vehicle, error)
	Create(v *db.Vehicle) error
	Update(v *db.Vehicle) (bool, error)
	Delete(id int) (bool, error)
	HasUpcomingConfirmed(id int) (bool, error)
}

type PostgresVehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: database}
}

const vehicleColumns = `id, type, model, year, price_per_day, available, created_at, updated_at`

func (r *PostgresVehicleRepository) GetByID(id int) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.DB.QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id).Scan(
		&v.ID, &v.Type, &v.Model, &v.Year, &v.PricePerDay, &v.Available, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying vehicle: %w", err)
	}
	return &v, nil
}

func (r *PostgresVehicleRepository) Exists(id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM vehicles WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking vehicle existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresVehicleRepository) List() ([]db.Vehicle, error) {
	return r.list(`SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`)
}

func (r *PostgresVehicleRepository) ListAvailable(start, end time.Time, vehicleType string) ([]db.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles v
		WHERE v.available = TRUE
		AND NOT EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.vehicle_id = v.id
			AND r.status = '` + db.StatusConfirmed + `'
			AND r.start_date < $2
			AND r.end_date > $1
		)`
	args := []any{start, end}
	if vehicleType != "" {
		args = append(args, vehicleType)
		query += ` AND v.type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY v.price_per_day, v.id`
	return r.list(query, args...)
}

func (r *PostgresVehicleRepository) Create(v *db.Vehicle) error {
	err := r.DB.QueryRow(`
		INSERT INTO vehicles (type, model, year, price_per_day, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		v.Type, v.Model, v.Year, v.PricePerDay, v.Available, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting vehicle: %w", err)
	}
	return nil
}

func (r *PostgresVehicleRepository) Update(v *db.Vehicle) (bool, error) {
	err := r.DB.QueryRow(`
		UPDATE vehicles
		SET type = $1, model = $2, year = $3, price_per_day = $4, available = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`,
		v.Type, v.Model, v.Year, v.PricePerDay, v.Available, v.ID,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error updating vehicle: %w", err)
	}
	return true, nil
}

func (r *PostgresVehicleRepository) Delete(id int) (bool, error) {
	result, err := r.DB.Exec(`DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error deleting vehicle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PostgresVehicleRepository) HasUpcomingConfirmed(id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE vehicle_id = $1 AND status = '`+db.StatusConfirmed+`' AND end_date > NOW()
		)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking upcoming reservations: %w", err)
	}
	return exists, nil
}

func (r *PostgresVehicleRepository) list(query string, args ...any) ([]db.Vehicle, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.ID, &v.Type, &v.Model, &v.Year, &v.PricePerDay, &v.Available, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicles: %w", err)
	}
	return vehicles, nil
}
