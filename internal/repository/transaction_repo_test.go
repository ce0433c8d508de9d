package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txColumnNames = []string{
	"id", "customer_id", "customer_name", "customer_phone", "bell_number", "currency",
	"discount", "total_amount", "paid_amount", "remaining_amount", "created_at", "updated_at",
}

var itemColumnNames = []string{
	"id", "transaction_id", "product_id", "product_name", "gram", "karat", "purchase_price_to_afn", "sale_price", "sale_currency",
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func lockedTransactionRows(now time.Time, remaining string) *pgxmock.Rows {
	return pgxmock.NewRows(txColumnNames).AddRow(
		int64(7), (*int64)(nil), "Ahmad", "0700000000", int64(1001), model.CurrencyAFN,
		dec("0"), dec("10000"), dec("2000"), dec(remaining), now, now,
	)
}

func itemRows() *pgxmock.Rows {
	return pgxmock.NewRows(itemColumnNames).AddRow(
		int64(1), int64(7), (*int64)(nil), "Ring", dec("4.5"), 18, dec("0"), dec("10000"), model.CurrencyAFN,
	)
}

func TestTransactionRepository_ApplyPayment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM transactions WHERE id = \$1 FOR UPDATE`).WithArgs(int64(7)).
		WillReturnRows(lockedTransactionRows(now, "8000"))
	mock.ExpectQuery(`FROM transaction_items WHERE transaction_id = ANY`).WithArgs(pgxmock.AnyArg()).
		WillReturnRows(itemRows())
	mock.ExpectQuery(`UPDATE transactions SET paid_amount`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), int64(7), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(int64(7), pgxmock.AnyArg(), model.CurrencyAFN, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectCommit()

	repo := NewTransactionRepository(mock)
	tx, payment, err := repo.ApplyPayment(context.Background(), 7, func(t *model.Transaction) (*model.Payment, error) {
		p, err := ledger.ApplyPayment(t, dec("3000"), model.CurrencyAFN, nil, now)
		return &p, err
	})

	require.NoError(t, err)
	assert.True(t, dec("5000").Equal(tx.Receipt.RemainingAmount))
	assert.True(t, dec("5000").Equal(tx.Receipt.PaidAmount))
	assert.Len(t, tx.LineItems, 1)
	assert.Equal(t, int64(3), payment.ID)
	assert.Equal(t, int64(7), payment.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ApplyPayment_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(7)).WillReturnRows(pgxmock.NewRows(txColumnNames))
	mock.ExpectRollback()

	repo := NewTransactionRepository(mock)
	_, _, err = repo.ApplyPayment(context.Background(), 7, func(t *model.Transaction) (*model.Payment, error) {
		return nil, errors.New("must not be called")
	})

	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ApplyPayment_RejectedPaymentRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(7)).WillReturnRows(lockedTransactionRows(now, "8000"))
	mock.ExpectQuery(`FROM transaction_items`).WithArgs(pgxmock.AnyArg()).WillReturnRows(itemRows())
	mock.ExpectRollback()

	repo := NewTransactionRepository(mock)
	_, _, err = repo.ApplyPayment(context.Background(), 7, func(t *model.Transaction) (*model.Payment, error) {
		p, err := ledger.ApplyPayment(t, dec("9000"), model.CurrencyAFN, nil, now)
		return &p, err
	})

	assert.ErrorIs(t, err, ledger.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ApplyPayment_LostRaceIsConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(7)).WillReturnRows(lockedTransactionRows(now, "8000"))
	mock.ExpectQuery(`FROM transaction_items`).WithArgs(pgxmock.AnyArg()).WillReturnRows(itemRows())
	mock.ExpectQuery(`UPDATE transactions SET paid_amount`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), int64(7), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))
	mock.ExpectRollback()

	repo := NewTransactionRepository(mock)
	_, _, err = repo.ApplyPayment(context.Background(), 7, func(t *model.Transaction) (*model.Payment, error) {
		p, err := ledger.ApplyPayment(t, dec("1000"), model.CurrencyAFN, nil, now)
		return &p, err
	})

	assert.ErrorIs(t, err, ledger.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Create_AlreadySoldProduct(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	productID := int64(42)
	now := time.Now()
	tx := &model.Transaction{
		CustomerName: "Ahmad",
		Currency:     model.CurrencyAFN,
		LineItems: []model.LineItem{{
			ProductID:   &productID,
			ProductName: "Bangle",
			Gram:        dec("12"),
			Karat:       21,
			SalePrice:   model.Money{Price: dec("50000"), Currency: model.CurrencyAFN},
		}},
		Receipt:   model.Receipt{TotalAmount: dec("50000"), RemainingAmount: dec("50000")},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO transactions`).WithArgs(
		pgxmock.AnyArg(), "Ahmad", "", model.CurrencyAFN,
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), now, now,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "bell_number"}).AddRow(int64(9), int64(1009)))
	mock.ExpectQuery(`INSERT INTO transaction_items`).
		WithArgs(int64(9), pgxmock.AnyArg(), "Bangle", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), model.CurrencyAFN).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(`UPDATE products SET is_sold = TRUE`).WithArgs(productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = NewTransactionRepository(mock).Create(context.Background(), tx, nil)

	assert.ErrorIs(t, err, ledger.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_FindByID_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM transactions WHERE id = \$1`).WithArgs(int64(5)).WillReturnRows(pgxmock.NewRows(txColumnNames))

	tx, err := NewTransactionRepository(mock).FindByID(context.Background(), 5)
	assert.NoError(t, err)
	assert.Nil(t, tx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Delete_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE products SET is_sold = FALSE`).WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`DELETE FROM transactions`).WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err = NewTransactionRepository(mock).Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
