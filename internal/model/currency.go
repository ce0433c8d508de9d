package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Currency is one of the closed set of currencies the store books in.
type Currency string

const (
	CurrencyAFN Currency = "AFN"
	CurrencyUSD Currency = "USD"
)

// BaseCurrency is the bookkeeping and reporting currency.
const BaseCurrency = CurrencyAFN

var ErrUnknownCurrency = errors.New("unknown currency")

// Labels used by the shop staff and stored by older clients.
var currencyLabels = map[string]Currency{
	"afn":     CurrencyAFN,
	"afghani": CurrencyAFN,
	"افغانی":  CurrencyAFN,
	"؋":       CurrencyAFN,
	"usd":     CurrencyUSD,
	"dollar":  CurrencyUSD,
	"دالر":    CurrencyUSD,
	"$":       CurrencyUSD,
}

// ParseCurrency maps a tag or a free-text label to a Currency.
func ParseCurrency(s string) (Currency, error) {
	c, ok := currencyLabels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}

// IsForeign reports whether amounts in c must be converted before they are
// summed with base currency amounts.
func (c Currency) IsForeign() bool {
	return c != BaseCurrency
}

func (c Currency) Valid() bool {
	return c == CurrencyAFN || c == CurrencyUSD
}

// Label returns the label printed on receipts.
func (c Currency) Label() string {
	switch c {
	case CurrencyAFN:
		return "افغانی"
	case CurrencyUSD:
		return "دالر"
	}
	return string(c)
}

func (c *Currency) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
