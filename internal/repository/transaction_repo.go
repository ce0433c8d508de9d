package repository

import (
	"context"
	"errors"
	"fmt"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"

	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, customer_id, customer_name, customer_phone, bell_number, currency,
            discount, total_amount, paid_amount, remaining_amount, created_at, updated_at`

const itemColumns = `id, transaction_id, product_id, product_name, gram, karat, purchase_price_to_afn, sale_price, sale_currency`

const paymentColumns = `id, transaction_id, amount, currency, converted_amount, rate, created_at`

type transactionRepository struct {
	db DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	t := &model.Transaction{}
	err := row.Scan(
		&t.ID, &t.CustomerID, &t.CustomerName, &t.CustomerPhone, &t.BellNumber, &t.Currency,
		&t.Receipt.Discount, &t.Receipt.TotalAmount, &t.Receipt.PaidAmount, &t.Receipt.RemainingAmount,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	if err := row.Scan(&p.ID, &p.TransactionID, &p.Amount, &p.Currency, &p.ConvertedAmount, &p.Rate, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a transaction with its line items, marks the sold products
// and records the initial payment if there is one, all in one database transaction.
func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction, initial *model.Payment) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		sql := `INSERT INTO transactions (customer_id, customer_name, customer_phone, currency,
                    discount, total_amount, paid_amount, remaining_amount, created_at, updated_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, bell_number`
		err := tx.QueryRow(ctx, sql, t.CustomerID, t.CustomerName, t.CustomerPhone, t.Currency,
			t.Receipt.Discount, t.Receipt.TotalAmount, t.Receipt.PaidAmount, t.Receipt.RemainingAmount,
			t.CreatedAt, t.UpdatedAt).Scan(&t.ID, &t.BellNumber)
		if err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		for i := range t.LineItems {
			item := &t.LineItems[i]
			item.TransactionID = t.ID
			sql := `INSERT INTO transaction_items (transaction_id, product_id, product_name, gram, karat,
                        purchase_price_to_afn, sale_price, sale_currency)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
			err := tx.QueryRow(ctx, sql, item.TransactionID, item.ProductID, item.ProductName, item.Gram, item.Karat,
				item.PurchasePriceToAfn, item.SalePrice.Price, item.SalePrice.Currency).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("failed to create transaction item: %w", err)
			}
			if item.ProductID == nil {
				continue
			}
			tag, err := tx.Exec(ctx, `UPDATE products SET is_sold = TRUE WHERE id = $1 AND is_sold = FALSE`, *item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to mark product sold: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: product %d is missing or already sold", ledger.ErrConflict, *item.ProductID)
			}
		}

		if initial != nil {
			initial.TransactionID = t.ID
			if err := insertPayment(ctx, tx, initial); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertPayment(ctx context.Context, q Querier, p *model.Payment) error {
	sql := `INSERT INTO payments (transaction_id, amount, currency, converted_amount, rate, created_at)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := q.QueryRow(ctx, sql, p.TransactionID, p.Amount, p.Currency, p.ConvertedAmount, p.Rate, p.CreatedAt).Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

// loadItems attaches line items to the given transactions
func loadItems(ctx context.Context, q Querier, txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	ids := make([]int64, len(txs))
	pos := make(map[int64]int, len(txs))
	for i := range txs {
		ids[i] = txs[i].ID
		pos[txs[i].ID] = i
		txs[i].LineItems = []model.LineItem{}
	}

	sql := `SELECT ` + itemColumns + ` FROM transaction_items WHERE transaction_id = ANY($1) ORDER BY transaction_id, id`
	rows, err := q.Query(ctx, sql, ids)
	if err != nil {
		return fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.ProductID, &item.ProductName, &item.Gram, &item.Karat,
			&item.PurchasePriceToAfn, &item.SalePrice.Price, &item.SalePrice.Currency); err != nil {
			return fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		if i, ok := pos[item.TransactionID]; ok {
			txs[i].LineItems = append(txs[i].LineItems, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating transaction item rows: %w", err)
	}
	return nil
}

// FindByID retrieves a transaction and its line items
func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*model.Transaction, error) {
	sql := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}
	txs := []model.Transaction{*t}
	if err := loadItems(ctx, r.db, txs); err != nil {
		return nil, err
	}
	return &txs[0], nil
}

// FindAll retrieves transactions matching the filters, oldest first
func (r *transactionRepository) FindAll(ctx context.Context, filters model.TransactionFilters) ([]model.Transaction, error) {
	var where whereBuilder
	if filters.CustomerID != nil {
		where.add("customer_id = $%d", *filters.CustomerID)
	}
	if filters.StartDate != nil {
		where.add("created_at >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil {
		where.add("created_at <= $%d", *filters.EndDate)
	}
	if filters.OnlyLoans {
		where.conditions = append(where.conditions, "remaining_amount > 0")
	}

	sql := `SELECT ` + transactionColumns + ` FROM transactions` + where.String() + ` ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txs = append(txs, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	rows.Close()

	if err := loadItems(ctx, r.db, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// ApplyPayment locks the transaction row, lets apply mutate the loaded record,
// then writes the new balance and the payment. The balance update is guarded
// by the remaining amount that was read, so a lost race surfaces as ErrConflict.
func (r *transactionRepository) ApplyPayment(ctx context.Context, id int64, apply PaymentFunc) (*model.Transaction, *model.Payment, error) {
	var (
		updated *model.Transaction
		payment *model.Payment
	)
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		sql := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
		t, err := scanTransaction(tx.QueryRow(ctx, sql, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: transaction %d", ledger.ErrNotFound, id)
			}
			return fmt.Errorf("failed to lock transaction: %w", err)
		}
		txs := []model.Transaction{*t}
		if err := loadItems(ctx, tx, txs); err != nil {
			return err
		}
		t = &txs[0]

		previousRemaining := t.Receipt.RemainingAmount
		p, err := apply(t)
		if err != nil {
			return err
		}

		sql = `UPDATE transactions SET paid_amount = $1, remaining_amount = $2, updated_at = NOW()
               WHERE id = $3 AND remaining_amount = $4 RETURNING updated_at`
		err = tx.QueryRow(ctx, sql, t.Receipt.PaidAmount, t.Receipt.RemainingAmount, t.ID, previousRemaining).Scan(&t.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: balance of transaction %d changed during payment", ledger.ErrConflict, id)
			}
			return fmt.Errorf("failed to update transaction balance: %w", err)
		}

		p.TransactionID = t.ID
		if err := insertPayment(ctx, tx, p); err != nil {
			return err
		}
		updated, payment = t, p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, payment, nil
}

// ListPayments returns the payments of a transaction, oldest first
func (r *transactionRepository) ListPayments(ctx context.Context, transactionID int64) ([]model.Payment, error) {
	sql := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1 ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, sql, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// Delete removes a transaction and puts its products back on sale
func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `UPDATE products SET is_sold = FALSE
            WHERE id IN (SELECT product_id FROM transaction_items WHERE transaction_id = $1 AND product_id IS NOT NULL)`, id)
		if err != nil {
			return fmt.Errorf("failed to restore products: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: transaction %d", ledger.ErrNotFound, id)
		}
		return nil
	})
}
