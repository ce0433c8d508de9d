package model

import "github.com/shopspring/decimal"

type ExpenseGroup struct {
	Type     string          `json:"type"`
	Currency Currency        `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

type CurrencyTotal struct {
	Currency Currency        `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// DailySales totals are in the base currency.
type DailySales struct {
	TotalAmount       decimal.Decimal `json:"total_amount"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	TotalGram         decimal.Decimal `json:"total_gram"`
	TotalPurchaseCost decimal.Decimal `json:"total_purchase_cost"`
	LineItemCount     int             `json:"line_item_count"`
	TransactionCount  int             `json:"transaction_count"`
}

type InventoryGroup struct {
	ProductName          string          `json:"product_name"`
	Karat                int             `json:"karat"`
	TotalGold            decimal.Decimal `json:"total_gold"`
	TotalPurchaseCostAfn decimal.Decimal `json:"total_purchase_cost_afn"`
	Count                int             `json:"count"`
}

// LoanGroup is the outstanding balance of one customer, in the base currency.
type LoanGroup struct {
	CustomerID        *int64          `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	CustomerPhone     string          `json:"customer_phone"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	TotalLoan         decimal.Decimal `json:"total_loan"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	TransactionsCount int             `json:"transactions_count"`
}

type SupplierBalance struct {
	SupplierID    int64           `json:"supplier_id"`
	Currency      Currency        `json:"currency"`
	TotalGram     decimal.Decimal `json:"total_gram"`
	TotalPasa     decimal.Decimal `json:"total_pasa"`
	TotalWage     decimal.Decimal `json:"total_wage"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	RemainingWage decimal.Decimal `json:"remaining_wage"`
	Purchases     int             `json:"purchases"`
}
