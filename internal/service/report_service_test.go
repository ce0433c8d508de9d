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
	"github.com/xuri/excelize/v2"
)

type reportFixture struct {
	txRepo       *mocks.MockTransactionRepository
	rateRepo     *mocks.MockRateRepository
	expenseRepo  *mocks.MockExpenseRepository
	productRepo  *mocks.MockProductRepository
	supplierRepo *mocks.MockSupplierRepository
	svc          ReportService
}

func newReportFixture(t *testing.T) reportFixture {
	ctrl := gomock.NewController(t)
	f := reportFixture{
		txRepo:       mocks.NewMockTransactionRepository(ctrl),
		rateRepo:     mocks.NewMockRateRepository(ctrl),
		expenseRepo:  mocks.NewMockExpenseRepository(ctrl),
		productRepo:  mocks.NewMockProductRepository(ctrl),
		supplierRepo: mocks.NewMockSupplierRepository(ctrl),
	}
	f.svc = NewReportService(f.txRepo, f.rateRepo, f.expenseRepo, f.productRepo, f.supplierRepo)
	return f
}

func TestReportService_DailySales_UsesThatDaysRate(t *testing.T) {
	f := newReportFixture(t)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	usd := openSale(1, model.CurrencyUSD, "100", "0")
	afn := openSale(2, model.CurrencyAFN, "5000", "5000")

	f.txRepo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]model.Transaction{*usd, *afn}, nil)
	f.rateRepo.EXPECT().FindRate(gomock.Any(), day).Return(&model.CurrencyRate{Date: day, UsdToAfn: d("70")}, nil)

	sales, err := f.svc.DailySales(context.Background(), day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.True(t, d("12000").Equal(sales.TotalAmount))
	assert.True(t, d("7000").Equal(sales.RemainingAmount))
	assert.Equal(t, 2, sales.TransactionCount)
}

func TestReportService_DailySales_MissingRate(t *testing.T) {
	f := newReportFixture(t)
	usd := openSale(1, model.CurrencyUSD, "100", "0")
	f.txRepo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]model.Transaction{*usd}, nil)
	f.rateRepo.EXPECT().FindRate(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.svc.DailySales(context.Background(), fixedNow)
	assert.ErrorIs(t, err, ledger.ErrMissingRate)
}

func TestReportService_OutstandingLoans_AfnOnlySkipsRates(t *testing.T) {
	f := newReportFixture(t)
	a := openSale(1, model.CurrencyAFN, "5000", "1000")
	b := openSale(2, model.CurrencyAFN, "9000", "0")
	f.txRepo.EXPECT().FindAll(gomock.Any(), model.TransactionFilters{OnlyLoans: true}).Return([]model.Transaction{*a, *b}, nil)

	loans, err := f.svc.OutstandingLoans(context.Background(), model.TransactionFilters{})
	require.NoError(t, err)
	require.Len(t, loans, 1, "same walk-in customer")
	assert.True(t, d("13000").Equal(loans[0].TotalLoan))
}

func TestReportService_OutstandingLoans_LoadsRatesForForeignDays(t *testing.T) {
	f := newReportFixture(t)
	usd := openSale(1, model.CurrencyUSD, "100", "0")
	day := time.Date(usd.CreatedAt.Year(), usd.CreatedAt.Month(), usd.CreatedAt.Day(), 0, 0, 0, 0, time.UTC)

	f.txRepo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]model.Transaction{*usd}, nil)
	f.rateRepo.EXPECT().ListRates(gomock.Any(), day, day).Return([]model.CurrencyRate{{Date: day, UsdToAfn: d("72")}}, nil)

	loans, err := f.svc.OutstandingLoans(context.Background(), model.TransactionFilters{})
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.True(t, d("7200").Equal(loans[0].TotalLoan))
}

func TestReportService_ExportWorkbook(t *testing.T) {
	f := newReportFixture(t)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	f.expenseRepo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]model.Expense{
		{Type: "rent", Price: d("300"), Currency: model.CurrencyUSD},
	}, nil)
	f.txRepo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.productRepo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return([]model.Product{
		{ProductName: "Ring", Karat: 18, Gram: d("4"), PurchasePriceToAfn: d("20000")},
	}, nil)

	buf, err := f.svc.ExportWorkbook(context.Background(), from, to)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, []string{"Expenses", "Loans", "Inventory"}, wb.GetSheetList())

	rent, err := wb.GetCellValue("Expenses", "A2")
	require.NoError(t, err)
	assert.Equal(t, "rent", rent)
}
