package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                 int64            `json:"id"`
	ProductName        string           `json:"product_name"`
	Karat              int              `json:"karat"`
	Gram               decimal.Decimal  `json:"gram"`
	PurchasePriceToAfn decimal.Decimal  `json:"purchase_price_to_afn"`
	SalePrice          *decimal.Decimal `json:"sale_price,omitempty"`
	Currency           Currency         `json:"currency"`
	SupplierID         *int64           `json:"supplier_id,omitempty"`
	ImagePath          *string          `json:"image_path,omitempty"`
	ThumbPath          *string          `json:"thumb_path,omitempty"`
	SortOrder          int              `json:"sort_order"`
	IsSold             bool             `json:"is_sold"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type ProductRequest struct {
	ProductName        string           `json:"product_name" binding:"required"`
	Karat              int              `json:"karat" binding:"required,gt=0,lte=24"`
	Gram               decimal.Decimal  `json:"gram"`
	PurchasePriceToAfn decimal.Decimal  `json:"purchase_price_to_afn"`
	SalePrice          *decimal.Decimal `json:"sale_price"`
	Currency           Currency         `json:"currency" binding:"omitempty,currency"`
	SupplierID         *int64           `json:"supplier_id"`
	SortOrder          *int             `json:"sort_order"`
}

type ProductFilters struct {
	Name   *string
	Karat  *int
	IsSold *bool
}

// StoreProduct is the public view of an unsold product.
type StoreProduct struct {
	ID          int64            `json:"id"`
	ProductName string           `json:"product_name"`
	Karat       int              `json:"karat"`
	Gram        decimal.Decimal  `json:"gram"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Currency    Currency         `json:"currency"`
	ImageURL    *string          `json:"image_url,omitempty"`
	ThumbURL    *string          `json:"thumb_url,omitempty"`
}
