package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}

type AdminAuthRepository interface {
	GetByEmail(email string) (*Admin, error)
	Create(email, passwordHash string) error
}

type PostgresAdminAuthRepository struct {
	DB *sql.DB
}

func NewAdminAuthRepository(database *sql.DB) *PostgresAdminAuthRepository {
	return &PostgresAdminAuthRepository{DB: database}
}

func (r *PostgresAdminAuthRepository) GetByEmail(email string) (*Admin, error) {
	var admin Admin
	err := r.DB.QueryRow(`SELECT id, email, password_hash FROM admins WHERE email = $1`, email).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying admin: %w", err)
	}
	return &admin, nil
}

func (r *PostgresAdminAuthRepository) Create(email, passwordHash string) error {
	_, err := r.DB.Exec(`INSERT INTO admins (email, password_hash) VALUES ($1, $2)`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("error inserting admin: %w", err)
	}
	return nil
}
