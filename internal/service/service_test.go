package service

import (
	"time"

	"jewelry_store/internal/model"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openSale(id int64, currency model.Currency, total, paid string) *model.Transaction {
	return &model.Transaction{
		ID:           id,
		CustomerName: "Ahmad",
		Currency:     currency,
		LineItems: []model.LineItem{{
			ID:          1,
			ProductName: "Ring",
			Gram:        d("4"),
			Karat:       18,
			SalePrice:   model.Money{Price: d(total), Currency: currency},
		}},
		Receipt: model.Receipt{
			Discount:        decimal.Zero,
			TotalAmount:     d(total),
			PaidAmount:      d(paid),
			RemainingAmount: d(total).Sub(d(paid)),
		},
		CreatedAt: fixedNow.Add(-48 * time.Hour),
	}
}
