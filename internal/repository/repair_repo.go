package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"

	"github.com/jackc/pgx/v5"
)

const repairColumns = `id, customer_name, customer_phone, item, description, gram, price, currency, status, received_at, delivered_at`

type repairRepository struct {
	db Querier
}

// NewRepairRepository creates a new RepairRepository
func NewRepairRepository(db Querier) RepairRepository {
	return &repairRepository{db: db}
}

func scanRepair(row pgx.Row) (*model.Repair, error) {
	rp := &model.Repair{}
	err := row.Scan(&rp.ID, &rp.CustomerName, &rp.CustomerPhone, &rp.Item, &rp.Description, &rp.Gram, &rp.Price,
		&rp.Currency, &rp.Status, &rp.ReceivedAt, &rp.DeliveredAt)
	if err != nil {
		return nil, err
	}
	return rp, nil
}

func (r *repairRepository) Create(ctx context.Context, rp *model.Repair) error {
	sql := `INSERT INTO repairs (customer_name, customer_phone, item, description, gram, price, currency, status, received_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRow(ctx, sql, rp.CustomerName, rp.CustomerPhone, rp.Item, rp.Description, rp.Gram, rp.Price,
		rp.Currency, rp.Status, rp.ReceivedAt).Scan(&rp.ID)
	if err != nil {
		return fmt.Errorf("failed to create repair: %w", err)
	}
	return nil
}

func (r *repairRepository) FindByID(ctx context.Context, id int64) (*model.Repair, error) {
	rp, err := scanRepair(r.db.QueryRow(ctx, `SELECT `+repairColumns+` FROM repairs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find repair by ID: %w", err)
	}
	return rp, nil
}

// FindAll lists repairs newest first, optionally limited to one status
func (r *repairRepository) FindAll(ctx context.Context, status *model.RepairStatus) ([]model.Repair, error) {
	var where whereBuilder
	if status != nil {
		where.add("status = $%d", *status)
	}
	sql := `SELECT ` + repairColumns + ` FROM repairs` + where.String() + ` ORDER BY received_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query repairs: %w", err)
	}
	defer rows.Close()

	repairs := []model.Repair{}
	for rows.Next() {
		rp, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repair row: %w", err)
		}
		repairs = append(repairs, *rp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repair rows: %w", err)
	}
	return repairs, nil
}

func (r *repairRepository) UpdateStatus(ctx context.Context, id int64, status model.RepairStatus, deliveredAt *time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE repairs SET status = $1, delivered_at = $2 WHERE id = $3`, status, deliveredAt, id)
	if err != nil {
		return fmt.Errorf("failed to update repair status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: repair %d", ledger.ErrNotFound, id)
	}
	return nil
}

func (r *repairRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM repairs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete repair: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: repair %d", ledger.ErrNotFound, id)
	}
	return nil
}
