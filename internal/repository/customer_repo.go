package repository

import (
	"context"
	"errors"
	"fmt"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"

	"github.com/jackc/pgx/v5"
)

type customerRepository struct {
	db Querier
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db Querier) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts a new customer
func (r *customerRepository) Create(ctx context.Context, c *model.Customer) error {
	sql := `INSERT INTO customers (name, phone, address, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRow(ctx, sql, c.Name, c.Phone, c.Address, c.CreatedAt).Scan(&c.ID); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// FindByID retrieves a customer by its ID
func (r *customerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	c := &model.Customer{}
	sql := `SELECT id, name, phone, address, created_at FROM customers WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}
	return c, nil
}

// FindAll lists customers, optionally matching name or phone
func (r *customerRepository) FindAll(ctx context.Context, search string) ([]model.Customer, error) {
	sql := `SELECT id, name, phone, address, created_at FROM customers`
	var args []any
	if search != "" {
		sql += ` WHERE name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	sql += ` ORDER BY name, id`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

// Update modifies an existing customer
func (r *customerRepository) Update(ctx context.Context, c *model.Customer) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers SET name = $1, phone = $2, address = $3 WHERE id = $4`,
		c.Name, c.Phone, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %d", ledger.ErrNotFound, c.ID)
	}
	return nil
}

// Delete removes a customer; their transactions keep the name and phone
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %d", ledger.ErrNotFound, id)
	}
	return nil
}
