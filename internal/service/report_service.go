package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository"
	"jewelry_store/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReportService runs the ledger aggregations over stored records
type ReportService interface {
	DailySales(ctx context.Context, day time.Time) (*model.DailySales, error)
	ExpensesByType(ctx context.Context, filters model.ExpenseFilters) ([]model.ExpenseGroup, error)
	ExpensesByCurrency(ctx context.Context, filters model.ExpenseFilters) ([]model.CurrencyTotal, error)
	InventoryValue(ctx context.Context) ([]model.InventoryGroup, error)
	OutstandingLoans(ctx context.Context, filters model.TransactionFilters) ([]model.LoanGroup, error)
	SupplierBalances(ctx context.Context) ([]model.SupplierBalance, error)
	// ExportWorkbook writes the reports for [from, to] into an xlsx workbook.
	ExportWorkbook(ctx context.Context, from, to time.Time) (*bytes.Buffer, error)
}

type reportService struct {
	txRepo       repository.TransactionRepository
	rateRepo     repository.RateRepository
	expenseRepo  repository.ExpenseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewReportService creates a new ReportService
func NewReportService(txRepo repository.TransactionRepository, rateRepo repository.RateRepository, expenseRepo repository.ExpenseRepository,
	productRepo repository.ProductRepository, supplierRepo repository.SupplierRepository) ReportService {
	return &reportService{
		txRepo:       txRepo,
		rateRepo:     rateRepo,
		expenseRepo:  expenseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// DailySales totals the sales made on day, converting foreign receipts with that day's rate.
func (s *reportService) DailySales(ctx context.Context, day time.Time) (*model.DailySales, error) {
	start := utils.Today(day)
	end := utils.EndOfDay(day)
	txs, err := s.txRepo.FindAll(ctx, model.TransactionFilters{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for daily sales: %w", err)
	}

	var rate *decimal.Decimal
	stored, err := s.rateRepo.FindRate(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate for daily sales: %w", err)
	}
	if stored != nil {
		rate = &stored.UsdToAfn
	}

	sales, err := ledger.DailySales(txs, rate)
	if err != nil {
		return nil, err
	}
	return &sales, nil
}

func (s *reportService) expenses(ctx context.Context, filters model.ExpenseFilters) ([]model.Expense, error) {
	expenses, err := s.expenseRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return expenses, nil
}

func (s *reportService) ExpensesByType(ctx context.Context, filters model.ExpenseFilters) ([]model.ExpenseGroup, error) {
	expenses, err := s.expenses(ctx, filters)
	if err != nil {
		return nil, err
	}
	return ledger.ExpensesByType(expenses), nil
}

func (s *reportService) ExpensesByCurrency(ctx context.Context, filters model.ExpenseFilters) ([]model.CurrencyTotal, error) {
	expenses, err := s.expenses(ctx, filters)
	if err != nil {
		return nil, err
	}
	return ledger.ExpensesByCurrency(expenses), nil
}

func (s *reportService) InventoryValue(ctx context.Context) ([]model.InventoryGroup, error) {
	unsold := false
	products, err := s.productRepo.FindAll(ctx, model.ProductFilters{IsSold: &unsold})
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return ledger.InventoryValue(products), nil
}

// OutstandingLoans groups open balances per customer. Rates are loaded for
// the span of days the open transactions were created on.
func (s *reportService) OutstandingLoans(ctx context.Context, filters model.TransactionFilters) ([]model.LoanGroup, error) {
	filters.OnlyLoans = true
	txs, err := s.txRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load open transactions: %w", err)
	}

	var rates ledger.RateTable
	var from, to time.Time
	for _, tx := range txs {
		if !ledger.IsForeign(tx) {
			continue
		}
		if from.IsZero() || tx.CreatedAt.Before(from) {
			from = tx.CreatedAt
		}
		if to.IsZero() || tx.CreatedAt.After(to) {
			to = tx.CreatedAt
		}
	}
	if !from.IsZero() {
		stored, err := s.rateRepo.ListRates(ctx, utils.Today(from), utils.Today(to))
		if err != nil {
			return nil, fmt.Errorf("failed to load rates for loans: %w", err)
		}
		rates = ledger.NewRateTable(stored)
	}
	return ledger.OutstandingLoans(txs, rates)
}

func (s *reportService) SupplierBalances(ctx context.Context) ([]model.SupplierBalance, error) {
	purchases, err := s.supplierRepo.ListPurchases(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier purchases: %w", err)
	}
	return ledger.SupplierBalances(purchases), nil
}

func (s *reportService) ExportWorkbook(ctx context.Context, from, to time.Time) (*bytes.Buffer, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", ledger.ErrValidation)
	}
	expenses, err := s.ExpensesByType(ctx, model.ExpenseFilters{StartDate: &from, EndDate: &to})
	if err != nil {
		return nil, err
	}
	loans, err := s.OutstandingLoans(ctx, model.TransactionFilters{})
	if err != nil {
		return nil, err
	}
	inventory, err := s.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	w := workbook{f: f}
	w.sheet("Expenses", []any{"Type", "Currency", "Count", "Total"})
	for _, g := range expenses {
		w.row("Expenses", []any{g.Type, string(g.Currency), g.Count, g.Total.InexactFloat64()})
	}
	w.sheet("Loans", []any{"Customer", "Phone", "Transactions", "Total", "Paid", "Discount", "Outstanding (AFN)"})
	for _, g := range loans {
		w.row("Loans", []any{g.CustomerName, g.CustomerPhone, g.TransactionsCount, g.TotalAmount.InexactFloat64(),
			g.TotalPaid.InexactFloat64(), g.TotalDiscount.InexactFloat64(), g.TotalLoan.InexactFloat64()})
	}
	w.sheet("Inventory", []any{"Product", "Karat", "Count", "Gold (g)", "Purchase cost (AFN)"})
	for _, g := range inventory {
		w.row("Inventory", []any{g.ProductName, g.Karat, g.Count, g.TotalGold.InexactFloat64(), g.TotalPurchaseCostAfn.InexactFloat64()})
	}
	if w.err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", w.err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

// workbook appends rows to sheets and keeps the first error
type workbook struct {
	f    *excelize.File
	rows map[string]int
	err  error
}

func (w *workbook) sheet(name string, header []any) {
	if w.err != nil {
		return
	}
	if w.rows == nil {
		w.rows = make(map[string]int)
	}
	if _, w.err = w.f.NewSheet(name); w.err != nil {
		return
	}
	w.row(name, header)
}

func (w *workbook) row(sheet string, values []any) {
	if w.err != nil {
		return
	}
	w.rows[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, w.rows[sheet])
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}
