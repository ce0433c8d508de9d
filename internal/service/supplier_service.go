package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository"
	"jewelry_store/internal/utils"
)

// SupplierService manages suppliers and the gold bought from them
type SupplierService interface {
	CreateSupplier(ctx context.Context, req model.SupplierRequest) (*model.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*model.Supplier, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, req model.SupplierRequest) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
	AddPurchase(ctx context.Context, supplierID int64, req model.SupplierPurchaseRequest) (*model.SupplierPurchase, error)
	ListPurchases(ctx context.Context, supplierID int64) ([]model.SupplierPurchase, error)
	Balance(ctx context.Context, supplierID int64) ([]model.SupplierBalance, error)
}

type supplierService struct {
	repo        repository.SupplierRepository
	phoneRegion string
	now         func() time.Time
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(repo repository.SupplierRepository, phoneRegion string) SupplierService {
	return &supplierService{repo: repo, phoneRegion: phoneRegion, now: time.Now}
}

func (s *supplierService) CreateSupplier(ctx context.Context, req model.SupplierRequest) (*model.Supplier, error) {
	phone, err := contactPhone(req.Phone, s.phoneRegion)
	if err != nil {
		return nil, err
	}
	sup := &model.Supplier{
		Name:      strings.TrimSpace(req.Name),
		Phone:     phone,
		Address:   req.Address,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, fmt.Errorf("failed to create supplier in repo: %w", err)
	}
	return sup, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id int64) (*model.Supplier, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier by ID: %w", err)
	}
	if sup == nil {
		return nil, fmt.Errorf("%w: supplier %d", ledger.ErrNotFound, id)
	}
	return sup, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers from repo: %w", err)
	}
	return suppliers, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id int64, req model.SupplierRequest) (*model.Supplier, error) {
	phone, err := contactPhone(req.Phone, s.phoneRegion)
	if err != nil {
		return nil, err
	}
	sup, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	sup.Name = strings.TrimSpace(req.Name)
	sup.Phone = phone
	sup.Address = req.Address
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, fmt.Errorf("failed to update supplier in repo: %w", err)
	}
	return sup, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier in repo: %w", err)
	}
	return nil
}

// AddPurchase records gold received from a supplier. Paid may not exceed the wage owed.
func (s *supplierService) AddPurchase(ctx context.Context, supplierID int64, req model.SupplierPurchaseRequest) (*model.SupplierPurchase, error) {
	if !req.Gram.IsPositive() {
		return nil, fmt.Errorf("%w: gram must be greater than zero", ledger.ErrValidation)
	}
	if req.Pasa.IsNegative() || req.Wage.IsNegative() || req.Paid.IsNegative() {
		return nil, fmt.Errorf("%w: pasa, wage and paid cannot be negative", ledger.ErrValidation)
	}
	if req.Paid.GreaterThan(req.Wage) {
		return nil, fmt.Errorf("%w: paid %s exceeds wage %s", ledger.ErrValidation, req.Paid, req.Wage)
	}
	date, err := utils.DayOrToday(req.Date, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}
	if _, err := s.GetSupplier(ctx, supplierID); err != nil {
		return nil, err
	}

	p := &model.SupplierPurchase{
		SupplierID:  supplierID,
		ProductName: strings.TrimSpace(req.ProductName),
		Gram:        req.Gram,
		Karat:       req.Karat,
		Pasa:        req.Pasa,
		Wage:        req.Wage,
		Paid:        req.Paid,
		Currency:    req.Currency,
		Date:        date,
		CreatedAt:   s.now(),
	}
	if err := s.repo.AddPurchase(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to add supplier purchase in repo: %w", err)
	}
	return p, nil
}

func (s *supplierService) ListPurchases(ctx context.Context, supplierID int64) ([]model.SupplierPurchase, error) {
	if _, err := s.GetSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	purchases, err := s.repo.ListPurchases(ctx, &supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier purchases: %w", err)
	}
	return purchases, nil
}

func (s *supplierService) Balance(ctx context.Context, supplierID int64) ([]model.SupplierBalance, error) {
	purchases, err := s.ListPurchases(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ledger.SupplierBalances(purchases), nil
}
