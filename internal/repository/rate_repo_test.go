package repository

import (
	"context"
	"testing"
	"time"

	"jewelry_store/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateRepository_FindRate_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM currency_rates WHERE rate_date = \$1`).WithArgs(day).
		WillReturnRows(pgxmock.NewRows([]string{"rate_date", "usd_to_afn", "updated_at"}))

	rate, err := NewRateRepository(mock).FindRate(context.Background(), day)
	assert.NoError(t, err)
	assert.Nil(t, rate)
}

func TestRateRepository_UpsertRate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery(`ON CONFLICT \(rate_date\) DO UPDATE`).WithArgs(day, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	rate := &model.CurrencyRate{Date: day, UsdToAfn: decimal.NewFromInt(70)}
	require.NoError(t, NewRateRepository(mock).UpsertRate(context.Background(), rate))
	assert.Equal(t, now, rate.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateRepository_LatestGoldRate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	perGram := decimal.RequireFromString("4952.55")
	mock.ExpectQuery(`WHERE price_per_gram_afn IS NOT NULL ORDER BY rate_date DESC LIMIT 1`).
		WillReturnRows(pgxmock.NewRows([]string{"rate_date", "price_per_ounce_usd", "price_per_gram_afn", "source", "updated_at"}).
			AddRow(day, decimal.NewFromInt(2200), &perGram, "manual", day))

	g, err := NewRateRepository(mock).LatestGoldRate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, day, g.Date)
	require.NotNil(t, g.PricePerGramAfn)
	assert.True(t, perGram.Equal(*g.PricePerGramAfn))
}
