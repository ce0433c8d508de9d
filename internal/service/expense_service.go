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

// ExpenseService manages shop expenses
type ExpenseService interface {
	CreateExpense(ctx context.Context, req model.ExpenseRequest) (*model.Expense, error)
	GetExpense(ctx context.Context, id int64) (*model.Expense, error)
	ListExpenses(ctx context.Context, filters model.ExpenseFilters) ([]model.Expense, error)
	UpdateExpense(ctx context.Context, id int64, req model.ExpenseRequest) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

type expenseService struct {
	repo repository.ExpenseRepository
	now  func() time.Time
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo, now: time.Now}
}

func (s *expenseService) apply(e *model.Expense, req model.ExpenseRequest) error {
	if !req.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ledger.ErrValidation)
	}
	if !req.Currency.Valid() {
		return fmt.Errorf("%w: unknown currency %q", ledger.ErrValidation, req.Currency)
	}
	date, err := utils.DayOrToday(req.Date, s.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}
	e.Type = strings.TrimSpace(req.Type)
	e.Detail = req.Detail
	e.Price = req.Price
	e.Currency = req.Currency
	e.Date = date
	e.AccountID = req.AccountID
	return nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req model.ExpenseRequest) (*model.Expense, error) {
	e := &model.Expense{CreatedAt: s.now()}
	if err := s.apply(e, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create expense in repo: %w", err)
	}
	return e, nil
}

func (s *expenseService) GetExpense(ctx context.Context, id int64) (*model.Expense, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: expense %d", ledger.ErrNotFound, id)
	}
	return e, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, filters model.ExpenseFilters) ([]model.Expense, error) {
	expenses, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses from repo: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, id int64, req model.ExpenseRequest) (*model.Expense, error) {
	e, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(e, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update expense in repo: %w", err)
	}
	return e, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense in repo: %w", err)
	}
	return nil
}
