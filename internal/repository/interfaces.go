package repository

import (
	"context"
	"time"

	"jewelry_store/internal/model"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
}

// RateRepository stores daily exchange and gold rates. Find methods return
// nil, nil when no row exists for the day.
type RateRepository interface {
	UpsertRate(ctx context.Context, rate *model.CurrencyRate) error
	FindRate(ctx context.Context, day time.Time) (*model.CurrencyRate, error)
	ListRates(ctx context.Context, from, to time.Time) ([]model.CurrencyRate, error)
	UpsertGoldRate(ctx context.Context, rate *model.GoldRate) error
	FindGoldRate(ctx context.Context, day time.Time) (*model.GoldRate, error)
	LatestGoldRate(ctx context.Context) (*model.GoldRate, error)
	ListGoldRates(ctx context.Context, from, to time.Time) ([]model.GoldRate, error)
}

// PaymentFunc mutates a locked transaction and returns the payment to record.
type PaymentFunc func(t *model.Transaction) (*model.Payment, error)

// TransactionRepository defines operations for sales transactions
type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction, initial *model.Payment) error
	FindByID(ctx context.Context, id int64) (*model.Transaction, error)
	FindAll(ctx context.Context, filters model.TransactionFilters) ([]model.Transaction, error)
	ApplyPayment(ctx context.Context, id int64, apply PaymentFunc) (*model.Transaction, *model.Payment, error)
	ListPayments(ctx context.Context, transactionID int64) ([]model.Payment, error)
	Delete(ctx context.Context, id int64) error
}

// ExpenseRepository defines operations for expense data
type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	FindByID(ctx context.Context, id int64) (*model.Expense, error)
	FindAll(ctx context.Context, filters model.ExpenseFilters) ([]model.Expense, error)
	Update(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines operations for inventory
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context, filters model.ProductFilters) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	UpdateImage(ctx context.Context, id int64, imagePath, thumbPath string) error
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository defines operations for customer data
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	FindAll(ctx context.Context, search string) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int64) error
}

// SupplierRepository defines operations for suppliers and their purchases
type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id int64) (*model.Supplier, error)
	FindAll(ctx context.Context) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	Delete(ctx context.Context, id int64) error
	AddPurchase(ctx context.Context, p *model.SupplierPurchase) error
	ListPurchases(ctx context.Context, supplierID *int64) ([]model.SupplierPurchase, error)
}

// RepairRepository defines operations for repair tickets
type RepairRepository interface {
	Create(ctx context.Context, r *model.Repair) error
	FindByID(ctx context.Context, id int64) (*model.Repair, error)
	FindAll(ctx context.Context, status *model.RepairStatus) ([]model.Repair, error)
	UpdateStatus(ctx context.Context, id int64, status model.RepairStatus, deliveredAt *time.Time) error
	Delete(ctx context.Context, id int64) error
}
