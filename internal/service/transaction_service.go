package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jewelry_store/internal/config"
	"jewelry_store/internal/ledger"
	"jewelry_store/internal/metrics"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository"
	"jewelry_store/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TransactionService records sales and their repayments
type TransactionService interface {
	CreateTransaction(ctx context.Context, req model.CreateTransactionRequest) (*model.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filters model.TransactionFilters) ([]model.Transaction, error)
	ApplyPayment(ctx context.Context, id int64, req model.PaymentRequest) (*model.Transaction, *model.Payment, error)
	ListPayments(ctx context.Context, id int64) ([]model.Payment, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

type transactionService struct {
	repo         repository.TransactionRepository
	rateRepo     repository.RateRepository
	customerRepo repository.CustomerRepository
	logger       *logrus.Logger
	now          func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(repo repository.TransactionRepository, rateRepo repository.RateRepository, customerRepo repository.CustomerRepository) TransactionService {
	return &transactionService{
		repo:         repo,
		rateRepo:     rateRepo,
		customerRepo: customerRepo,
		logger:       config.GetLogger(),
		now:          time.Now,
	}
}

// receiptCurrency returns the single currency shared by all line items.
func receiptCurrency(items []model.LineItemRequest) (model.Currency, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("%w: a transaction needs at least one line item", ledger.ErrValidation)
	}
	currency := items[0].Currency
	for i, item := range items {
		if !item.Currency.Valid() {
			return "", fmt.Errorf("%w: line item %d has unknown currency %q", ledger.ErrValidation, i+1, item.Currency)
		}
		if item.Currency != currency {
			return "", fmt.Errorf("%w: line items mix %s and %s; record them as separate sales", ledger.ErrValidation, currency, item.Currency)
		}
	}
	return currency, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req model.CreateTransactionRequest) (*model.Transaction, error) {
	currency, err := receiptCurrency(req.LineItems)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to find customer: %w", err)
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: customer %d", ledger.ErrNotFound, *req.CustomerID)
		}
	}

	total := decimal.Zero
	items := make([]model.LineItem, 0, len(req.LineItems))
	for i, r := range req.LineItems {
		if !r.SalePrice.IsPositive() {
			return nil, fmt.Errorf("%w: line item %d sale price must be greater than zero", ledger.ErrValidation, i+1)
		}
		if r.Gram.IsNegative() || r.PurchasePriceToAfn.IsNegative() {
			return nil, fmt.Errorf("%w: line item %d has a negative gram or purchase price", ledger.ErrValidation, i+1)
		}
		total = total.Add(r.SalePrice)
		items = append(items, model.LineItem{
			ProductID:          r.ProductID,
			ProductName:        r.ProductName,
			Gram:               r.Gram,
			Karat:              r.Karat,
			PurchasePriceToAfn: r.PurchasePriceToAfn,
			SalePrice:          model.Money{Price: r.SalePrice, Currency: r.Currency},
		})
	}

	receipt, err := ledger.NewReceipt(total, req.Discount, req.PaidAmount)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tx := &model.Transaction{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Currency:      currency,
		LineItems:     items,
		Receipt:       receipt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var initial *model.Payment
	if receipt.PaidAmount.IsPositive() {
		initial = &model.Payment{
			Amount:          receipt.PaidAmount,
			Currency:        currency,
			ConvertedAmount: receipt.PaidAmount,
			CreatedAt:       now,
		}
	}

	if err := s.repo.Create(ctx, tx, initial); err != nil {
		return nil, fmt.Errorf("failed to create transaction in repo: %w", err)
	}
	return tx, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction %d", ledger.ErrNotFound, id)
	}
	return tx, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filters model.TransactionFilters) ([]model.Transaction, error) {
	if filters.EndDate != nil {
		end := utils.EndOfDay(*filters.EndDate)
		filters.EndDate = &end
	}
	txs, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions from repo: %w", err)
	}
	return txs, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return "validation"
	case errors.Is(err, ledger.ErrNotFound):
		return "not_found"
	case errors.Is(err, ledger.ErrMissingRate):
		return "missing_rate"
	case errors.Is(err, ledger.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

// ApplyPayment records a repayment against a transaction. Today's rate is read
// up front and only used when the payment currency differs from the receipt's.
func (s *transactionService) ApplyPayment(ctx context.Context, id int64, req model.PaymentRequest) (*model.Transaction, *model.Payment, error) {
	now := s.now()
	var rate *decimal.Decimal
	todays, err := s.rateRepo.FindRate(ctx, utils.Today(now))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get today's rate: %w", err)
	}
	if todays != nil {
		rate = &todays.UsdToAfn
	}

	tx, payment, err := s.repo.ApplyPayment(ctx, id, func(t *model.Transaction) (*model.Payment, error) {
		p, err := ledger.ApplyPayment(t, req.Amount, req.Currency, rate, now)
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		metrics.PaymentsRejected.WithLabelValues(rejectionReason(err)).Inc()
		return nil, nil, err
	}

	metrics.PaymentsApplied.WithLabelValues(string(req.Currency)).Inc()
	s.logger.WithFields(logrus.Fields{
		"transaction_id": id,
		"amount":         req.Amount.String(),
		"currency":       req.Currency,
		"remaining":      tx.Receipt.RemainingAmount.String(),
		"state":          ledger.State(tx.Receipt),
	}).Info("payment applied")
	return tx, payment, nil
}

func (s *transactionService) ListPayments(ctx context.Context, id int64) ([]model.Payment, error) {
	if _, err := s.GetTransaction(ctx, id); err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete transaction in repo: %w", err)
	}
	return nil
}
