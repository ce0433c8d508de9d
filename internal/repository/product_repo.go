package repository

import (
	"context"
	"errors"
	"fmt"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"

	"github.com/jackc/pgx/v5"
)

const productColumns = `id, product_name, karat, gram, purchase_price_to_afn, sale_price, currency, supplier_id,
            image_path, thumb_path, sort_order, is_sold, created_at, updated_at`

type productRepository struct {
	db Querier
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db Querier) ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(&p.ID, &p.ProductName, &p.Karat, &p.Gram, &p.PurchasePriceToAfn, &p.SalePrice, &p.Currency,
		&p.SupplierID, &p.ImagePath, &p.ThumbPath, &p.SortOrder, &p.IsSold, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new product
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (product_name, karat, gram, purchase_price_to_afn, sale_price, currency,
                supplier_id, sort_order, is_sold, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRow(ctx, sql, p.ProductName, p.Karat, p.Gram, p.PurchasePriceToAfn, p.SalePrice, p.Currency,
		p.SupplierID, p.SortOrder, p.IsSold, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// FindAll retrieves products ordered by sort order then newest first
func (r *productRepository) FindAll(ctx context.Context, filters model.ProductFilters) ([]model.Product, error) {
	var where whereBuilder
	if filters.Name != nil && *filters.Name != "" {
		where.add("product_name ILIKE '%%' || $%d || '%%'", *filters.Name)
	}
	if filters.Karat != nil {
		where.add("karat = $%d", *filters.Karat)
	}
	if filters.IsSold != nil {
		where.add("is_sold = $%d", *filters.IsSold)
	}

	sql := `SELECT ` + productColumns + ` FROM products` + where.String() + ` ORDER BY sort_order, created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// Update modifies an existing product
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	sql := `UPDATE products SET product_name = $1, karat = $2, gram = $3, purchase_price_to_afn = $4,
                sale_price = $5, currency = $6, supplier_id = $7, sort_order = $8, updated_at = NOW()
            WHERE id = $9 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, p.ProductName, p.Karat, p.Gram, p.PurchasePriceToAfn, p.SalePrice, p.Currency,
		p.SupplierID, p.SortOrder, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: product %d", ledger.ErrNotFound, p.ID)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// UpdateImage stores the paths of a product's photo and thumbnail
func (r *productRepository) UpdateImage(ctx context.Context, id int64, imagePath, thumbPath string) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET image_path = $1, thumb_path = $2, updated_at = NOW() WHERE id = $3`,
		imagePath, thumbPath, id)
	if err != nil {
		return fmt.Errorf("failed to update product image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", ledger.ErrNotFound, id)
	}
	return nil
}

// Delete removes an unsold product
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1 AND is_sold = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: unsold product %d", ledger.ErrNotFound, id)
	}
	return nil
}
