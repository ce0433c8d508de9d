package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Detail    string          `json:"detail"`
	Price     decimal.Decimal `json:"price"`
	Currency  Currency        `json:"currency"`
	Date      time.Time       `json:"date"`
	AccountID *int64          `json:"account_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type ExpenseRequest struct {
	Type      string          `json:"type" binding:"required"`
	Detail    string          `json:"detail"`
	Price     decimal.Decimal `json:"price"`
	Currency  Currency        `json:"currency" binding:"required,currency"`
	Date      string          `json:"date" binding:"omitempty,ymd"`
	AccountID *int64          `json:"account_id"`
}

type ExpenseFilters struct {
	Type      *string
	Currency  *Currency
	StartDate *time.Time
	EndDate   *time.Time
}
