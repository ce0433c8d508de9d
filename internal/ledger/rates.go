package ledger

import (
	"fmt"
	"time"

	"jewelry_store/internal/model"

	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

var (
	// GramsPerTroyOunce converts an ounce gold quote to grams.
	GramsPerTroyOunce = decimal.RequireFromString("31.1035")

	pureKarat = decimal.NewFromInt(24)
)

// DayKey is the key used for per-day rate lookups.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// RateTable maps DayKey to the USD to AFN rate of that day.
type RateTable map[string]decimal.Decimal

// NewRateTable indexes rates by day.
func NewRateTable(rates []model.CurrencyRate) RateTable {
	table := make(RateTable, len(rates))
	for _, r := range rates {
		table[DayKey(r.Date)] = r.UsdToAfn
	}
	return table
}

// For returns the rate of the day t falls on. No nearest-day fallback.
func (t RateTable) For(day time.Time) (decimal.Decimal, bool) {
	r, ok := t[DayKey(day)]
	return r, ok
}

// ValidateRate rejects non-positive exchange rates.
func ValidateRate(usdToAfn decimal.Decimal) error {
	if !usdToAfn.IsPositive() {
		return fmt.Errorf("%w: usd_to_afn must be greater than zero", ErrValidation)
	}
	return nil
}

// Factor returns the multiplier that turns an amount in from into an amount in
// to. rate is the USD to AFN rate and may be nil when no conversion is needed.
func Factor(from, to model.Currency, rate *decimal.Decimal) (decimal.Decimal, error) {
	if !from.Valid() || !to.Valid() {
		return decimal.Zero, fmt.Errorf("%w: unsupported currency pair %s/%s", ErrValidation, from, to)
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if rate == nil {
		return decimal.Zero, fmt.Errorf("%w: need USD to AFN rate to convert %s to %s", ErrMissingRate, from, to)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: stored rate %s is not positive", ErrValidation, rate)
	}
	if from == model.CurrencyUSD {
		return *rate, nil
	}
	return decimal.NewFromInt(1).Div(*rate), nil
}

// Convert turns amount in from into to.
func Convert(amount decimal.Decimal, from, to model.Currency, rate *decimal.Decimal) (decimal.Decimal, error) {
	f, err := Factor(from, to, rate)
	if err != nil {
		return decimal.Zero, err
	}
	if from == model.CurrencyAFN && to == model.CurrencyUSD {
		// divide directly to keep precision
		return amount.Div(*rate), nil
	}
	return amount.Mul(f), nil
}

// ToBase converts amount into the base currency.
func ToBase(amount decimal.Decimal, from model.Currency, rate *decimal.Decimal) (decimal.Decimal, error) {
	return Convert(amount, from, model.BaseCurrency, rate)
}

// GoldPerGramAfn derives the AFN price of one gram from an ounce quote in USD.
// It returns nil when usdToAfn is nil.
func GoldPerGramAfn(pricePerOunceUsd decimal.Decimal, usdToAfn *decimal.Decimal) *decimal.Decimal {
	if usdToAfn == nil {
		return nil
	}
	perGram := pricePerOunceUsd.Div(GramsPerTroyOunce).Mul(*usdToAfn)
	return &perGram
}

// NewGoldRate validates a gold quote and fills in the per-gram AFN price when
// the caller did not supply one.
func NewGoldRate(day time.Time, req model.SetGoldRateRequest, usdToAfn *decimal.Decimal) (model.GoldRate, error) {
	if !req.PricePerOunceUsd.IsPositive() {
		return model.GoldRate{}, fmt.Errorf("%w: price_per_ounce_usd must be greater than zero", ErrValidation)
	}
	g := model.GoldRate{
		Date:             day,
		PricePerOunceUsd: req.PricePerOunceUsd,
		PricePerGramAfn:  req.PricePerGramAfn,
		Source:           req.Source,
	}
	if g.PricePerGramAfn != nil {
		if !g.PricePerGramAfn.IsPositive() {
			return model.GoldRate{}, fmt.Errorf("%w: price_per_gram_afn must be greater than zero", ErrValidation)
		}
		return g, nil
	}
	g.PricePerGramAfn = GoldPerGramAfn(req.PricePerOunceUsd, usdToAfn)
	return g, nil
}

// SuggestedPrice prices a piece from its weight, purity and the per-gram wage.
// goldPerGramAfn is the latest known gold price and may be nil.
func SuggestedPrice(gram decimal.Decimal, karat int, wagePerGram decimal.Decimal, goldPerGramAfn *decimal.Decimal) model.PriceSuggestion {
	switch {
	case goldPerGramAfn == nil:
		return model.PriceSuggestion{Message: "no gold rate on file"}
	case !gram.IsPositive():
		return model.PriceSuggestion{Message: "gram must be greater than zero"}
	case karat <= 0 || karat > 24:
		return model.PriceSuggestion{Message: "karat must be between 1 and 24"}
	case wagePerGram.IsNegative():
		return model.PriceSuggestion{Message: "wage per gram cannot be negative"}
	}

	purity := decimal.NewFromInt(int64(karat)).Div(pureKarat)
	goldValue := gram.Mul(purity).Mul(*goldPerGramAfn).Round(2)
	wageValue := gram.Mul(wagePerGram).Round(2)
	total := gram.Mul(purity).Mul(*goldPerGramAfn).Add(gram.Mul(wagePerGram)).Round(2)

	perGram := *goldPerGramAfn
	return model.PriceSuggestion{
		Available:         true,
		GoldPerGramAfn:    &perGram,
		GoldValue:         &goldValue,
		WageValue:         &wageValue,
		SuggestedPriceAfn: &total,
	}
}
