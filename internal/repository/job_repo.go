package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"rentafacil/internal/db"
)

type JobRepository interface {
	GetConfirmedReservationIDsPastEndDate() ([]int, error)
	UpdateReservationStatuses(ids []int, newStatus string) error
	DeletePendingReservationsOlderThan(before time.Time) (int64, error)
}

type PostgresJobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *PostgresJobRepository {
	return &PostgresJobRepository{DB: database}
}

// GetConfirmedReservationIDsPastEndDate finds Confirmed reservations whose
// rental period has already elapsed.
func (r *PostgresJobRepository) GetConfirmedReservationIDsPastEndDate() ([]int, error) {
	rows, err := r.DB.Query(`SELECT id FROM reservations WHERE status = '` + db.StatusConfirmed + `' AND end_date < NOW()`)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed reservations past end date: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *PostgresJobRepository) UpdateReservationStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.Exec(`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating reservation statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d reservations to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// DeletePendingReservationsOlderThan removes unconfirmed holds created before
// the given time.
func (r *PostgresJobRepository) DeletePendingReservationsOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM reservations WHERE status = '`+db.StatusPending+`' AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending reservations: %w", err)
	}
	return result.RowsAffected()
}
