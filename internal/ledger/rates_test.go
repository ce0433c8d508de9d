package ledger

import (
	"errors"
	"testing"
	"time"

	"jewelry_store/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRate(t *testing.T) {
	assert.NoError(t, ValidateRate(d("70.5")))
	assert.ErrorIs(t, ValidateRate(d("0")), ErrValidation)
	assert.ErrorIs(t, ValidateRate(d("-1")), ErrValidation)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		from    model.Currency
		to      model.Currency
		rate    *string
		want    string
		wantErr error
	}{
		{name: "same currency needs no rate", amount: "100", from: model.CurrencyAFN, to: model.CurrencyAFN, want: "100"},
		{name: "usd to afn multiplies", amount: "10", from: model.CurrencyUSD, to: model.CurrencyAFN, rate: strp("70"), want: "700"},
		{name: "afn to usd divides", amount: "700", from: model.CurrencyAFN, to: model.CurrencyUSD, rate: strp("70"), want: "10"},
		{name: "missing rate never defaults", amount: "10", from: model.CurrencyUSD, to: model.CurrencyAFN, wantErr: ErrMissingRate},
		{name: "unknown currency", amount: "10", from: model.Currency("EUR"), to: model.CurrencyAFN, rate: strp("70"), wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(d(tt.amount), tt.from, tt.to, dpOrNil(tt.rate))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}
}

func strp(s string) *string { return &s }

func dpOrNil(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	return dp(*s)
}

func TestNewGoldRate_DerivesPerGramFromOunce(t *testing.T) {
	g, err := NewGoldRate(day("2024-03-01"), model.SetGoldRateRequest{PricePerOunceUsd: d("2100"), Source: "kabul market"}, dp("70"))
	require.NoError(t, err)
	require.NotNil(t, g.PricePerGramAfn)

	want := d("2100").Div(GramsPerTroyOunce).Mul(d("70"))
	assert.True(t, want.Equal(*g.PricePerGramAfn))
	assert.Equal(t, "kabul market", g.Source)
}

func TestNewGoldRate_NoExchangeRateKeepsOunceOnly(t *testing.T) {
	g, err := NewGoldRate(day("2024-03-01"), model.SetGoldRateRequest{PricePerOunceUsd: d("2100")}, nil)
	require.NoError(t, err)
	assert.Nil(t, g.PricePerGramAfn)
	assertDecimal(t, "2100", g.PricePerOunceUsd)
}

func TestNewGoldRate_SuppliedPerGramWins(t *testing.T) {
	g, err := NewGoldRate(day("2024-03-01"), model.SetGoldRateRequest{PricePerOunceUsd: d("2100"), PricePerGramAfn: dp("4800")}, dp("70"))
	require.NoError(t, err)
	assertDecimal(t, "4800", *g.PricePerGramAfn)
}

func TestNewGoldRate_RejectsNonPositiveOunce(t *testing.T) {
	_, err := NewGoldRate(day("2024-03-01"), model.SetGoldRateRequest{PricePerOunceUsd: d("0")}, dp("70"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSuggestedPrice(t *testing.T) {
	s := SuggestedPrice(d("5"), 18, d("100"), dp("5000"))

	require.True(t, s.Available)
	assertDecimal(t, "18750", *s.GoldValue)
	assertDecimal(t, "500", *s.WageValue)
	assertDecimal(t, "19250.00", *s.SuggestedPriceAfn)
	assert.Equal(t, "19250.00", s.SuggestedPriceAfn.StringFixed(2))
}

func TestSuggestedPrice_RoundsToCents(t *testing.T) {
	s := SuggestedPrice(d("1.333"), 21, d("0"), dp("4999.99"))
	require.True(t, s.Available)
	assert.Equal(t, int32(-2), s.SuggestedPriceAfn.Exponent())
}

func TestSuggestedPrice_Unavailable(t *testing.T) {
	tests := []struct {
		name  string
		gram  string
		karat int
		wage  string
		gold  *decimal.Decimal
	}{
		{name: "no gold rate", gram: "5", karat: 18, wage: "100", gold: nil},
		{name: "zero gram", gram: "0", karat: 18, wage: "100", gold: dp("5000")},
		{name: "zero karat", gram: "5", karat: 0, wage: "100", gold: dp("5000")},
		{name: "karat above 24", gram: "5", karat: 25, wage: "100", gold: dp("5000")},
		{name: "negative wage", gram: "5", karat: 18, wage: "-1", gold: dp("5000")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SuggestedPrice(d(tt.gram), tt.karat, d(tt.wage), tt.gold)
			assert.False(t, s.Available)
			assert.NotEmpty(t, s.Message)
			assert.Nil(t, s.SuggestedPriceAfn)
		})
	}
}

func TestRateTable_ExactDayOnly(t *testing.T) {
	table := NewRateTable([]model.CurrencyRate{{Date: day("2024-03-01"), UsdToAfn: d("70")}})

	r, ok := table.For(day("2024-03-01").Add(15 * time.Hour))
	assert.True(t, ok)
	assertDecimal(t, "70", r)

	_, ok = table.For(day("2024-03-02"))
	assert.False(t, ok)
}
