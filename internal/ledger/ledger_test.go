package ledger

import (
	"testing"
	"time"

	"jewelry_store/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func afnSale(id int64, customerID int64, total, paid, discount string) model.Transaction {
	cid := customerID
	return model.Transaction{
		ID:         id,
		CustomerID: &cid,
		Currency:   model.CurrencyAFN,
		Receipt: model.Receipt{
			TotalAmount:     d(total),
			PaidAmount:      d(paid),
			Discount:        d(discount),
			RemainingAmount: d(total).Sub(d(paid)).Sub(d(discount)),
		},
		LineItems: []model.LineItem{{
			ProductName:        "ring",
			Gram:               d("2.5"),
			Karat:              18,
			PurchasePriceToAfn: d("1000"),
			SalePrice:          model.Money{Price: d(total), Currency: model.CurrencyAFN},
		}},
	}
}
