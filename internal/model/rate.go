package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate is the USD to AFN exchange rate for one calendar day.
type CurrencyRate struct {
	Date      time.Time       `json:"date"`
	UsdToAfn  decimal.Decimal `json:"usd_to_afn"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GoldRate is the gold price for one calendar day. PricePerGramAfn is nil when
// it could not be derived because no exchange rate existed for that day.
type GoldRate struct {
	Date             time.Time        `json:"date"`
	PricePerOunceUsd decimal.Decimal  `json:"price_per_ounce_usd"`
	PricePerGramAfn  *decimal.Decimal `json:"price_per_gram_afn"`
	Source           string           `json:"source"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type SetRateRequest struct {
	Date     string          `json:"date" binding:"omitempty,ymd"`
	UsdToAfn decimal.Decimal `json:"usd_to_afn"`
}

type SetGoldRateRequest struct {
	Date             string           `json:"date" binding:"omitempty,ymd"`
	PricePerOunceUsd decimal.Decimal  `json:"price_per_ounce_usd"`
	PricePerGramAfn  *decimal.Decimal `json:"price_per_gram_afn"`
	Source           string           `json:"source"`
}

// PriceSuggestion is the computed sale price for a piece. When Available is
// false the amounts are nil and Message says why.
type PriceSuggestion struct {
	Available         bool             `json:"available"`
	Message           string           `json:"message,omitempty"`
	GoldPerGramAfn    *decimal.Decimal `json:"gold_per_gram_afn"`
	GoldValue         *decimal.Decimal `json:"gold_value"`
	WageValue         *decimal.Decimal `json:"wage_value"`
	SuggestedPriceAfn *decimal.Decimal `json:"suggested_price_afn"`
}
