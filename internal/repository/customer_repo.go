package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rentafacil/internal/db"
)

// ErrDuplicateCustomer is returned when an insert hits the unique constraint
// on email or document number. Callers resolve the race by retrying the
// lookup instead of treating it as fatal.
var ErrDuplicateCustomer = errors.New("customer already exists")

const uniqueViolation = "23505"

type CustomerRepository interface {
	GetByID(id int) (*db.Customer, error)
	GetByEmail(email string) (*db.Customer, error)
	GetByDocumentNumber(documentNumber string) (*db.Customer, error)
	Create(c *db.Customer) error
	List() ([]db.Customer, error)
}

type PostgresCustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(database *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{DB: database}
}

const customerColumns = `id, name, email, phone, document_number, created_at, updated_at`

func (r *PostgresCustomerRepository) GetByID(id int) (*db.Customer, error) {
	return r.getOne(`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *PostgresCustomerRepository) GetByEmail(email string) (*db.Customer, error) {
	return r.getOne(`SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
}

func (r *PostgresCustomerRepository) GetByDocumentNumber(documentNumber string) (*db.Customer, error) {
	return r.getOne(`SELECT `+customerColumns+` FROM customers WHERE document_number = $1`, documentNumber)
}

func (r *PostgresCustomerRepository) getOne(query string, arg any) (*db.Customer, error) {
	var c db.Customer
	err := r.DB.QueryRow(query, arg).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.DocumentNumber, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying customer: %w", err)
	}
	return &c, nil
}

func (r *PostgresCustomerRepository) Create(c *db.Customer) error {
	err := r.DB.QueryRow(`
		INSERT INTO customers (name, email, phone, document_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.DocumentNumber, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateCustomer
		}
		return fmt.Errorf("error inserting customer: %w", err)
	}
	return nil
}

func (r *PostgresCustomerRepository) List() ([]db.Customer, error) {
	rows, err := r.DB.Query(`SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	var customers []db.Customer
	for rows.Next() {
		var c db.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.DocumentNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating customers: %w", err)
	}
	return customers, nil
}
