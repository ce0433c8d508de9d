package repository

import (
	"context"
	"errors"
	"fmt"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"

	"github.com/jackc/pgx/v5"
)

const expenseColumns = `id, type, detail, price, currency, expense_date, account_id, created_at`

type expenseRepository struct {
	db Querier
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db Querier) ExpenseRepository {
	return &expenseRepository{db: db}
}

func scanExpense(row pgx.Row) (*model.Expense, error) {
	e := &model.Expense{}
	if err := row.Scan(&e.ID, &e.Type, &e.Detail, &e.Price, &e.Currency, &e.Date, &e.AccountID, &e.CreatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new expense
func (r *expenseRepository) Create(ctx context.Context, e *model.Expense) error {
	sql := `INSERT INTO expenses (type, detail, price, currency, expense_date, account_id, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRow(ctx, sql, e.Type, e.Detail, e.Price, e.Currency, e.Date, e.AccountID, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// FindByID retrieves an expense by its ID
func (r *expenseRepository) FindByID(ctx context.Context, id int64) (*model.Expense, error) {
	e, err := scanExpense(r.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	return e, nil
}

// FindAll retrieves expenses matching the filters in date order
func (r *expenseRepository) FindAll(ctx context.Context, filters model.ExpenseFilters) ([]model.Expense, error) {
	var where whereBuilder
	if filters.Type != nil && *filters.Type != "" {
		where.add("type = $%d", *filters.Type)
	}
	if filters.Currency != nil {
		where.add("currency = $%d", *filters.Currency)
	}
	if filters.StartDate != nil {
		where.add("expense_date >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil {
		where.add("expense_date <= $%d", *filters.EndDate)
	}

	sql := `SELECT ` + expenseColumns + ` FROM expenses` + where.String() + ` ORDER BY expense_date, id`
	rows, err := r.db.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// Update modifies an existing expense
func (r *expenseRepository) Update(ctx context.Context, e *model.Expense) error {
	sql := `UPDATE expenses SET type = $1, detail = $2, price = $3, currency = $4, expense_date = $5, account_id = $6
            WHERE id = $7`
	tag, err := r.db.Exec(ctx, sql, e.Type, e.Detail, e.Price, e.Currency, e.Date, e.AccountID, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %d", ledger.ErrNotFound, e.ID)
	}
	return nil
}

// Delete removes an expense
func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %d", ledger.ErrNotFound, id)
	}
	return nil
}
