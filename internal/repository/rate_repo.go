package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jewelry_store/internal/model"

	"github.com/jackc/pgx/v5"
)

type rateRepository struct {
	db Querier
}

// NewRateRepository creates a new RateRepository
func NewRateRepository(db Querier) RateRepository {
	return &rateRepository{db: db}
}

// UpsertRate inserts the rate for a day or overwrites the existing one
func (r *rateRepository) UpsertRate(ctx context.Context, rate *model.CurrencyRate) error {
	sql := `INSERT INTO currency_rates (rate_date, usd_to_afn, updated_at)
            VALUES ($1, $2, NOW())
            ON CONFLICT (rate_date) DO UPDATE SET usd_to_afn = EXCLUDED.usd_to_afn, updated_at = NOW()
            RETURNING updated_at`
	if err := r.db.QueryRow(ctx, sql, rate.Date, rate.UsdToAfn).Scan(&rate.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert currency rate: %w", err)
	}
	return nil
}

// FindRate returns the rate stored for exactly that day
func (r *rateRepository) FindRate(ctx context.Context, day time.Time) (*model.CurrencyRate, error) {
	rate := &model.CurrencyRate{}
	sql := `SELECT rate_date, usd_to_afn, updated_at FROM currency_rates WHERE rate_date = $1`
	err := r.db.QueryRow(ctx, sql, day).Scan(&rate.Date, &rate.UsdToAfn, &rate.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find currency rate: %w", err)
	}
	return rate, nil
}

// ListRates returns rates between from and to inclusive, oldest first
func (r *rateRepository) ListRates(ctx context.Context, from, to time.Time) ([]model.CurrencyRate, error) {
	sql := `SELECT rate_date, usd_to_afn, updated_at FROM currency_rates
            WHERE rate_date BETWEEN $1 AND $2 ORDER BY rate_date`
	rows, err := r.db.Query(ctx, sql, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency rates: %w", err)
	}
	defer rows.Close()

	var rates []model.CurrencyRate
	for rows.Next() {
		var rate model.CurrencyRate
		if err := rows.Scan(&rate.Date, &rate.UsdToAfn, &rate.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan currency rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency rate rows: %w", err)
	}
	return rates, nil
}

// UpsertGoldRate inserts the gold quote for a day or overwrites the existing one
func (r *rateRepository) UpsertGoldRate(ctx context.Context, rate *model.GoldRate) error {
	sql := `INSERT INTO gold_rates (rate_date, price_per_ounce_usd, price_per_gram_afn, source, updated_at)
            VALUES ($1, $2, $3, $4, NOW())
            ON CONFLICT (rate_date) DO UPDATE SET
                price_per_ounce_usd = EXCLUDED.price_per_ounce_usd,
                price_per_gram_afn = EXCLUDED.price_per_gram_afn,
                source = EXCLUDED.source,
                updated_at = NOW()
            RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, rate.Date, rate.PricePerOunceUsd, rate.PricePerGramAfn, rate.Source).Scan(&rate.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert gold rate: %w", err)
	}
	return nil
}

const goldRateColumns = `rate_date, price_per_ounce_usd, price_per_gram_afn, source, updated_at`

func scanGoldRate(row pgx.Row) (*model.GoldRate, error) {
	g := &model.GoldRate{}
	if err := row.Scan(&g.Date, &g.PricePerOunceUsd, &g.PricePerGramAfn, &g.Source, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return g, nil
}

// FindGoldRate returns the gold quote stored for exactly that day
func (r *rateRepository) FindGoldRate(ctx context.Context, day time.Time) (*model.GoldRate, error) {
	sql := `SELECT ` + goldRateColumns + ` FROM gold_rates WHERE rate_date = $1`
	g, err := scanGoldRate(r.db.QueryRow(ctx, sql, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find gold rate: %w", err)
	}
	return g, nil
}

// LatestGoldRate returns the most recent quote that has a per-gram AFN price
func (r *rateRepository) LatestGoldRate(ctx context.Context) (*model.GoldRate, error) {
	sql := `SELECT ` + goldRateColumns + ` FROM gold_rates
            WHERE price_per_gram_afn IS NOT NULL ORDER BY rate_date DESC LIMIT 1`
	g, err := scanGoldRate(r.db.QueryRow(ctx, sql))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest gold rate: %w", err)
	}
	return g, nil
}

// ListGoldRates returns quotes between from and to inclusive, oldest first
func (r *rateRepository) ListGoldRates(ctx context.Context, from, to time.Time) ([]model.GoldRate, error) {
	sql := `SELECT ` + goldRateColumns + ` FROM gold_rates WHERE rate_date BETWEEN $1 AND $2 ORDER BY rate_date`
	rows, err := r.db.Query(ctx, sql, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query gold rates: %w", err)
	}
	defer rows.Close()

	var rates []model.GoldRate
	for rows.Next() {
		g, err := scanGoldRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gold rate row: %w", err)
		}
		rates = append(rates, *g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gold rate rows: %w", err)
	}
	return rates, nil
}
