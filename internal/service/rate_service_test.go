package service

import (
	"context"
	"testing"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateService(t *testing.T) (*rateService, *mocks.MockRateRepository) {
	repo := mocks.NewMockRateRepository(gomock.NewController(t))
	svc := NewRateService(repo).(*rateService)
	svc.now = fixedClock
	return svc, repo
}

func TestRateService_SetRate_DefaultsToToday(t *testing.T) {
	svc, repo := newRateService(t)
	today := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().UpsertRate(gomock.Any(), &model.CurrencyRate{Date: today, UsdToAfn: d("71.5")}).Return(nil)

	rate, err := svc.SetRate(context.Background(), model.SetRateRequest{UsdToAfn: d("71.5")})
	require.NoError(t, err)
	assert.Equal(t, today, rate.Date)
}

func TestRateService_SetRate_RejectsNonPositive(t *testing.T) {
	svc, _ := newRateService(t)
	_, err := svc.SetRate(context.Background(), model.SetRateRequest{UsdToAfn: d("0")})
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestRateService_SetGoldRate_DerivesPerGram(t *testing.T) {
	svc, repo := newRateService(t)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().FindRate(gomock.Any(), day).Return(&model.CurrencyRate{Date: day, UsdToAfn: d("70")}, nil)
	repo.EXPECT().UpsertGoldRate(gomock.Any(), gomock.Any()).Return(nil)

	gold, err := svc.SetGoldRate(context.Background(), model.SetGoldRateRequest{Date: "2024-03-01", PricePerOunceUsd: d("2100"), Source: "manual"})
	require.NoError(t, err)
	require.NotNil(t, gold.PricePerGramAfn)
	want := d("2100").Div(ledger.GramsPerTroyOunce).Mul(d("70"))
	assert.True(t, want.Equal(*gold.PricePerGramAfn))
}

func TestRateService_SetGoldRate_WithoutExchangeRateStillStores(t *testing.T) {
	svc, repo := newRateService(t)
	repo.EXPECT().FindRate(gomock.Any(), gomock.Any()).Return(nil, nil)
	repo.EXPECT().UpsertGoldRate(gomock.Any(), gomock.Any()).Return(nil)

	gold, err := svc.SetGoldRate(context.Background(), model.SetGoldRateRequest{PricePerOunceUsd: d("2100")})
	require.NoError(t, err)
	assert.Nil(t, gold.PricePerGramAfn)
}

func TestRateService_SuggestPrice(t *testing.T) {
	svc, repo := newRateService(t)
	perGram := d("5000")
	repo.EXPECT().LatestGoldRate(gomock.Any()).Return(&model.GoldRate{PricePerOunceUsd: d("2200"), PricePerGramAfn: &perGram}, nil)

	s, err := svc.SuggestPrice(context.Background(), d("10"), 18, d("200"))
	require.NoError(t, err)
	require.True(t, s.Available)
	assert.True(t, d("39500").Equal(*s.SuggestedPriceAfn))
}

func TestRateService_SuggestPrice_NoGoldRate(t *testing.T) {
	svc, repo := newRateService(t)
	repo.EXPECT().LatestGoldRate(gomock.Any()).Return(nil, nil)

	s, err := svc.SuggestPrice(context.Background(), d("10"), 18, d("200"))
	require.NoError(t, err)
	assert.False(t, s.Available)
	assert.Nil(t, s.SuggestedPriceAfn)
	assert.NotEmpty(t, s.Message)
}
