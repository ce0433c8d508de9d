package repository

import (
	"context"
	"errors"
	"fmt"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"

	"github.com/jackc/pgx/v5"
)

const purchaseColumns = `id, supplier_id, product_name, gram, karat, pasa, wage, paid, currency, purchase_date, created_at`

type supplierRepository struct {
	db Querier
}

// NewSupplierRepository creates a new SupplierRepository
func NewSupplierRepository(db Querier) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, s *model.Supplier) error {
	sql := `INSERT INTO suppliers (name, phone, address, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRow(ctx, sql, s.Name, s.Phone, s.Address, s.CreatedAt).Scan(&s.ID); err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *supplierRepository) FindByID(ctx context.Context, id int64) (*model.Supplier, error) {
	s := &model.Supplier{}
	sql := `SELECT id, name, phone, address, created_at FROM suppliers WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find supplier by ID: %w", err)
	}
	return s, nil
}

func (r *supplierRepository) FindAll(ctx context.Context) ([]model.Supplier, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, phone, address, created_at FROM suppliers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []model.Supplier{}
	for rows.Next() {
		var s model.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier rows: %w", err)
	}
	return suppliers, nil
}

func (r *supplierRepository) Update(ctx context.Context, s *model.Supplier) error {
	tag, err := r.db.Exec(ctx, `UPDATE suppliers SET name = $1, phone = $2, address = $3 WHERE id = $4`,
		s.Name, s.Phone, s.Address, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier %d", ledger.ErrNotFound, s.ID)
	}
	return nil
}

// Delete removes a supplier together with its purchase history
func (r *supplierRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier %d", ledger.ErrNotFound, id)
	}
	return nil
}

// AddPurchase records gold received from a supplier
func (r *supplierRepository) AddPurchase(ctx context.Context, p *model.SupplierPurchase) error {
	sql := `INSERT INTO supplier_purchases (supplier_id, product_name, gram, karat, pasa, wage, paid, currency, purchase_date, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRow(ctx, sql, p.SupplierID, p.ProductName, p.Gram, p.Karat, p.Pasa, p.Wage, p.Paid,
		p.Currency, p.Date, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create supplier purchase: %w", err)
	}
	return nil
}

// ListPurchases returns purchases of one supplier, or of all suppliers when supplierID is nil
func (r *supplierRepository) ListPurchases(ctx context.Context, supplierID *int64) ([]model.SupplierPurchase, error) {
	var where whereBuilder
	if supplierID != nil {
		where.add("supplier_id = $%d", *supplierID)
	}
	sql := `SELECT ` + purchaseColumns + ` FROM supplier_purchases` + where.String() + ` ORDER BY purchase_date, id`
	rows, err := r.db.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier purchases: %w", err)
	}
	defer rows.Close()

	purchases := []model.SupplierPurchase{}
	for rows.Next() {
		var p model.SupplierPurchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.ProductName, &p.Gram, &p.Karat, &p.Pasa, &p.Wage, &p.Paid,
			&p.Currency, &p.Date, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier purchase rows: %w", err)
	}
	return purchases, nil
}
