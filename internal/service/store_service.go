package service

import (
	"context"
	"fmt"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository"
)

// StoreService is the read-only public storefront
type StoreService interface {
	ListProducts(ctx context.Context, name string, karat *int) ([]model.StoreProduct, error)
	GetProduct(ctx context.Context, id int64) (*model.StoreProduct, error)
	GoldRate(ctx context.Context) (*model.GoldRate, error)
}

type storeService struct {
	productRepo repository.ProductRepository
	rateRepo    repository.RateRepository
	uploadsURL  string
}

// NewStoreService creates a StoreService. uploadsURL is the URL prefix uploads are served under.
func NewStoreService(productRepo repository.ProductRepository, rateRepo repository.RateRepository, uploadsURL string) StoreService {
	return &storeService{productRepo: productRepo, rateRepo: rateRepo, uploadsURL: uploadsURL}
}

func (s *storeService) url(rel *string) *string {
	if rel == nil {
		return nil
	}
	u := s.uploadsURL + "/" + *rel
	return &u
}

func (s *storeService) toStoreProduct(p model.Product) model.StoreProduct {
	return model.StoreProduct{
		ID:          p.ID,
		ProductName: p.ProductName,
		Karat:       p.Karat,
		Gram:        p.Gram,
		SalePrice:   p.SalePrice,
		Currency:    p.Currency,
		ImageURL:    s.url(p.ImagePath),
		ThumbURL:    s.url(p.ThumbPath),
	}
}

func (s *storeService) ListProducts(ctx context.Context, name string, karat *int) ([]model.StoreProduct, error) {
	unsold := false
	filters := model.ProductFilters{IsSold: &unsold, Karat: karat}
	if name != "" {
		filters.Name = &name
	}
	products, err := s.productRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list store products: %w", err)
	}
	out := make([]model.StoreProduct, 0, len(products))
	for _, p := range products {
		out = append(out, s.toStoreProduct(p))
	}
	return out, nil
}

// GetProduct hides sold products as if they did not exist
func (s *storeService) GetProduct(ctx context.Context, id int64) (*model.StoreProduct, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find store product: %w", err)
	}
	if p == nil || p.IsSold {
		return nil, fmt.Errorf("%w: product %d", ledger.ErrNotFound, id)
	}
	sp := s.toStoreProduct(*p)
	return &sp, nil
}

func (s *storeService) GoldRate(ctx context.Context) (*model.GoldRate, error) {
	gold, err := s.rateRepo.LatestGoldRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest gold rate: %w", err)
	}
	if gold == nil {
		return nil, fmt.Errorf("%w: no gold rate on file", ledger.ErrNotFound)
	}
	return gold, nil
}
