package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceState is where a transaction stands in its repayment.
type BalanceState string

const (
	BalanceUnpaid        BalanceState = "unpaid"
	BalancePartiallyPaid BalanceState = "partially_paid"
	BalanceSettled       BalanceState = "settled"
)

// LineItem is one sold piece on a transaction.
type LineItem struct {
	ID                 int64           `json:"id"`
	TransactionID      int64           `json:"transaction_id"`
	ProductID          *int64          `json:"product_id,omitempty"`
	ProductName        string          `json:"product_name"`
	Gram               decimal.Decimal `json:"gram"`
	Karat              int             `json:"karat"`
	PurchasePriceToAfn decimal.Decimal `json:"purchase_price_to_afn"`
	SalePrice          Money           `json:"sale_price"`
}

type Money struct {
	Price    decimal.Decimal `json:"price"`
	Currency Currency        `json:"currency"`
}

type Receipt struct {
	Discount        decimal.Decimal `json:"discount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// Transaction is a sale. Currency is the currency the receipt is kept in.
type Transaction struct {
	ID            int64      `json:"id"`
	CustomerID    *int64     `json:"customer_id,omitempty"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	BellNumber    int64      `json:"bell_number"`
	Currency      Currency   `json:"currency"`
	LineItems     []LineItem `json:"line_items"`
	Receipt       Receipt    `json:"receipt"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Payment is one repayment applied to a transaction. ConvertedAmount is in
// the transaction's currency.
type Payment struct {
	ID              int64            `json:"id"`
	TransactionID   int64            `json:"transaction_id"`
	Amount          decimal.Decimal  `json:"amount"`
	Currency        Currency         `json:"currency"`
	ConvertedAmount decimal.Decimal  `json:"converted_amount"`
	Rate            *decimal.Decimal `json:"rate,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

type LineItemRequest struct {
	ProductID          *int64          `json:"product_id"`
	ProductName        string          `json:"product_name" binding:"required"`
	Gram               decimal.Decimal `json:"gram"`
	Karat              int             `json:"karat" binding:"required,gt=0,lte=24"`
	PurchasePriceToAfn decimal.Decimal `json:"purchase_price_to_afn"`
	SalePrice          decimal.Decimal `json:"sale_price"`
	Currency           Currency        `json:"currency" binding:"required,currency"`
}

// CreateTransactionRequest is used for recording a new sale
type CreateTransactionRequest struct {
	CustomerID    *int64            `json:"customer_id"`
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerPhone string            `json:"customer_phone"`
	LineItems     []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal   `json:"discount"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
}

type PaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency" binding:"required,currency"`
}

// TransactionFilters narrows transaction listings
type TransactionFilters struct {
	CustomerID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	OnlyLoans  bool
}
