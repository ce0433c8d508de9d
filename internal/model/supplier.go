package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SupplierPurchase is gold received from a supplier. Pasa is the processing
// loss in grams charged on top of Gram, Wage the labor fee owed for the lot.
type SupplierPurchase struct {
	ID          int64           `json:"id"`
	SupplierID  int64           `json:"supplier_id"`
	ProductName string          `json:"product_name"`
	Gram        decimal.Decimal `json:"gram"`
	Karat       int             `json:"karat"`
	Pasa        decimal.Decimal `json:"pasa"`
	Wage        decimal.Decimal `json:"wage"`
	Paid        decimal.Decimal `json:"paid"`
	Currency    Currency        `json:"currency"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type SupplierPurchaseRequest struct {
	ProductName string          `json:"product_name" binding:"required"`
	Gram        decimal.Decimal `json:"gram"`
	Karat       int             `json:"karat" binding:"required,gt=0,lte=24"`
	Pasa        decimal.Decimal `json:"pasa"`
	Wage        decimal.Decimal `json:"wage"`
	Paid        decimal.Decimal `json:"paid"`
	Currency    Currency        `json:"currency" binding:"required,currency"`
	Date        string          `json:"date" binding:"omitempty,ymd"`
}
