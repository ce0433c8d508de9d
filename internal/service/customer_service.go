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

// CustomerService manages customer records
type CustomerService interface {
	CreateCustomer(ctx context.Context, req model.CustomerRequest) (*model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	ListCustomers(ctx context.Context, search string) ([]model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req model.CustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type customerService struct {
	repo        repository.CustomerRepository
	phoneRegion string
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo repository.CustomerRepository, phoneRegion string) CustomerService {
	return &customerService{repo: repo, phoneRegion: phoneRegion}
}

// contactPhone normalizes an optional phone number; empty stays empty.
func contactPhone(phone, region string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	normalized, err := utils.NormalizePhone(phone, region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}
	return normalized, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, req model.CustomerRequest) (*model.Customer, error) {
	phone, err := contactPhone(req.Phone, s.phoneRegion)
	if err != nil {
		return nil, err
	}
	c := &model.Customer{
		Name:      strings.TrimSpace(req.Name),
		Phone:     phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create customer in repo: %w", err)
	}
	return c, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: customer %d", ledger.ErrNotFound, id)
	}
	return c, nil
}

func (s *customerService) ListCustomers(ctx context.Context, search string) ([]model.Customer, error) {
	customers, err := s.repo.FindAll(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to list customers from repo: %w", err)
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int64, req model.CustomerRequest) (*model.Customer, error) {
	phone, err := contactPhone(req.Phone, s.phoneRegion)
	if err != nil {
		return nil, err
	}
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Phone = phone
	c.Address = req.Address
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update customer in repo: %w", err)
	}
	return c, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer in repo: %w", err)
	}
	return nil
}
