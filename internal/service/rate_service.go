package service

import (
	"context"
	"fmt"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository"
	"jewelry_store/internal/utils"

	"github.com/shopspring/decimal"
)

// RateService stores daily exchange and gold rates and prices pieces from them
type RateService interface {
	SetRate(ctx context.Context, req model.SetRateRequest) (*model.CurrencyRate, error)
	// GetRate returns nil when no rate is stored for that exact day.
	GetRate(ctx context.Context, day time.Time) (*model.CurrencyRate, error)
	ListRates(ctx context.Context, from, to time.Time) ([]model.CurrencyRate, error)
	SetGoldRate(ctx context.Context, req model.SetGoldRateRequest) (*model.GoldRate, error)
	GetGoldRate(ctx context.Context, day time.Time) (*model.GoldRate, error)
	LatestGoldRate(ctx context.Context) (*model.GoldRate, error)
	ListGoldRates(ctx context.Context, from, to time.Time) ([]model.GoldRate, error)
	SuggestPrice(ctx context.Context, gram decimal.Decimal, karat int, wagePerGram decimal.Decimal) (model.PriceSuggestion, error)
}

type rateService struct {
	repo repository.RateRepository
	now  func() time.Time
}

// NewRateService creates a new RateService
func NewRateService(repo repository.RateRepository) RateService {
	return &rateService{repo: repo, now: time.Now}
}

func (s *rateService) day(date string) (time.Time, error) {
	day, err := utils.DayOrToday(date, s.now())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}
	return day, nil
}

func (s *rateService) SetRate(ctx context.Context, req model.SetRateRequest) (*model.CurrencyRate, error) {
	if err := ledger.ValidateRate(req.UsdToAfn); err != nil {
		return nil, err
	}
	day, err := s.day(req.Date)
	if err != nil {
		return nil, err
	}
	rate := &model.CurrencyRate{Date: day, UsdToAfn: req.UsdToAfn}
	if err := s.repo.UpsertRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save currency rate: %w", err)
	}
	return rate, nil
}

func (s *rateService) GetRate(ctx context.Context, day time.Time) (*model.CurrencyRate, error) {
	rate, err := s.repo.FindRate(ctx, utils.Today(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency rate: %w", err)
	}
	return rate, nil
}

func (s *rateService) ListRates(ctx context.Context, from, to time.Time) ([]model.CurrencyRate, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", ledger.ErrValidation)
	}
	rates, err := s.repo.ListRates(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency rates: %w", err)
	}
	return rates, nil
}

// SetGoldRate stores the gold quote for a day. A missing per-gram price is
// derived from that day's exchange rate, or left empty when there is none.
func (s *rateService) SetGoldRate(ctx context.Context, req model.SetGoldRateRequest) (*model.GoldRate, error) {
	day, err := s.day(req.Date)
	if err != nil {
		return nil, err
	}

	var usdToAfn *decimal.Decimal
	if req.PricePerGramAfn == nil {
		rate, err := s.repo.FindRate(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("failed to get currency rate for gold price: %w", err)
		}
		if rate != nil {
			usdToAfn = &rate.UsdToAfn
		}
	}

	gold, err := ledger.NewGoldRate(day, req, usdToAfn)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertGoldRate(ctx, &gold); err != nil {
		return nil, fmt.Errorf("failed to save gold rate: %w", err)
	}
	return &gold, nil
}

func (s *rateService) GetGoldRate(ctx context.Context, day time.Time) (*model.GoldRate, error) {
	gold, err := s.repo.FindGoldRate(ctx, utils.Today(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get gold rate: %w", err)
	}
	return gold, nil
}

func (s *rateService) LatestGoldRate(ctx context.Context) (*model.GoldRate, error) {
	gold, err := s.repo.LatestGoldRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest gold rate: %w", err)
	}
	return gold, nil
}

func (s *rateService) ListGoldRates(ctx context.Context, from, to time.Time) ([]model.GoldRate, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", ledger.ErrValidation)
	}
	rates, err := s.repo.ListGoldRates(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list gold rates: %w", err)
	}
	return rates, nil
}

func (s *rateService) SuggestPrice(ctx context.Context, gram decimal.Decimal, karat int, wagePerGram decimal.Decimal) (model.PriceSuggestion, error) {
	gold, err := s.repo.LatestGoldRate(ctx)
	if err != nil {
		return model.PriceSuggestion{}, fmt.Errorf("failed to get latest gold rate: %w", err)
	}
	var perGram *decimal.Decimal
	if gold != nil {
		perGram = gold.PricePerGramAfn
	}
	return ledger.SuggestedPrice(gram, karat, wagePerGram, perGram), nil
}
