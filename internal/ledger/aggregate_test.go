package ledger

import (
	"testing"
	"time"

	"jewelry_store/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpensesByType_SinglePairSumsEverything(t *testing.T) {
	expenses := []model.Expense{
		{Type: "rent", Currency: model.CurrencyAFN, Price: d("1500.25")},
		{Type: "rent", Currency: model.CurrencyAFN, Price: d("300")},
		{Type: "rent", Currency: model.CurrencyAFN, Price: d("0.75")},
	}

	groups := ExpensesByType(expenses)

	require.Len(t, groups, 1)
	assertDecimal(t, "1801", groups[0].Total)
	assert.Equal(t, 3, groups[0].Count)
}

func TestExpensesByType_KeepsCurrenciesApartInFirstSeenOrder(t *testing.T) {
	expenses := []model.Expense{
		{Type: "salary", Currency: model.CurrencyUSD, Price: d("200")},
		{Type: "rent", Currency: model.CurrencyAFN, Price: d("5000")},
		{Type: "salary", Currency: model.CurrencyAFN, Price: d("7000")},
		{Type: "salary", Currency: model.CurrencyUSD, Price: d("50")},
	}

	groups := ExpensesByType(expenses)

	require.Len(t, groups, 3)
	assert.Equal(t, "salary", groups[0].Type)
	assert.Equal(t, model.CurrencyUSD, groups[0].Currency)
	assertDecimal(t, "250", groups[0].Total)
	assert.Equal(t, "rent", groups[1].Type)
	assert.Equal(t, model.CurrencyAFN, groups[2].Currency)
	assertDecimal(t, "7000", groups[2].Total)
}

func TestExpensesByCurrency(t *testing.T) {
	totals := ExpensesByCurrency([]model.Expense{
		{Type: "rent", Currency: model.CurrencyAFN, Price: d("100")},
		{Type: "tea", Currency: model.CurrencyUSD, Price: d("3")},
		{Type: "salary", Currency: model.CurrencyAFN, Price: d("900")},
	})

	require.Len(t, totals, 2)
	assert.Equal(t, model.CurrencyAFN, totals[0].Currency)
	assertDecimal(t, "1000", totals[0].Total)
	assert.Equal(t, 2, totals[0].Count)
	assertDecimal(t, "3", totals[1].Total)
}

func TestExpensesByType_Empty(t *testing.T) {
	assert.Empty(t, ExpensesByType(nil))
}

func TestDailySales_AfnOnlyIgnoresRate(t *testing.T) {
	txs := []model.Transaction{
		afnSale(1, 10, "10000", "4000", "500"),
		afnSale(2, 11, "2500", "2500", "0"),
	}

	for _, rate := range []*string{nil, strp("1"), strp("72.5")} {
		got, err := DailySales(txs, dpOrNil(rate))
		require.NoError(t, err)
		assertDecimal(t, "12500", got.TotalAmount)
		assertDecimal(t, "5500", got.RemainingAmount)
		assertDecimal(t, "500", got.TotalDiscount)
		assertDecimal(t, "5", got.TotalGram)
		assertDecimal(t, "2000", got.TotalPurchaseCost)
		assert.Equal(t, 2, got.LineItemCount)
		assert.Equal(t, 2, got.TransactionCount)
	}
}

func TestDailySales_ConvertsForeignReceipts(t *testing.T) {
	usd := afnSale(2, 11, "100", "40", "10")
	usd.Currency = model.CurrencyUSD
	usd.LineItems[0].SalePrice.Currency = model.CurrencyUSD

	got, err := DailySales([]model.Transaction{afnSale(1, 10, "1000", "0", "0"), usd}, dp("70"))

	require.NoError(t, err)
	assertDecimal(t, "8000", got.TotalAmount)
	assertDecimal(t, "4500", got.RemainingAmount)
	assertDecimal(t, "700", got.TotalDiscount)
}

func TestDailySales_LegacyRowFallsBackToLineItems(t *testing.T) {
	legacy := afnSale(3, 12, "10", "0", "0")
	legacy.Currency = ""
	legacy.LineItems[0].SalePrice.Currency = model.CurrencyUSD

	got, err := DailySales([]model.Transaction{legacy}, dp("70"))

	require.NoError(t, err)
	assertDecimal(t, "700", got.TotalAmount)
}

func TestDailySales_ForeignWithoutRateFails(t *testing.T) {
	usd := afnSale(2, 11, "100", "0", "0")
	usd.Currency = model.CurrencyUSD

	got, err := DailySales([]model.Transaction{afnSale(1, 10, "1000", "0", "0"), usd}, nil)

	assert.ErrorIs(t, err, ErrMissingRate)
	assert.Equal(t, model.DailySales{}, got)
}

func TestInventoryValue(t *testing.T) {
	products := []model.Product{
		{ProductName: "ring", Karat: 18, Gram: d("3.2"), PurchasePriceToAfn: d("15000")},
		{ProductName: "chain", Karat: 21, Gram: d("10"), PurchasePriceToAfn: d("60000")},
		{ProductName: "ring", Karat: 18, Gram: d("2.8"), PurchasePriceToAfn: d("13000")},
		{ProductName: "ring", Karat: 21, Gram: d("4"), PurchasePriceToAfn: d("22000")},
		{ProductName: "ring", Karat: 18, Gram: d("9"), PurchasePriceToAfn: d("99999"), IsSold: true},
	}

	groups := InventoryValue(products)

	require.Len(t, groups, 3)
	assert.Equal(t, "ring", groups[0].ProductName)
	assert.Equal(t, 18, groups[0].Karat)
	assertDecimal(t, "6", groups[0].TotalGold)
	assertDecimal(t, "28000", groups[0].TotalPurchaseCostAfn)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "chain", groups[1].ProductName)
	assert.Equal(t, 21, groups[2].Karat)
}

func TestOutstandingLoans_GroupsAndSorts(t *testing.T) {
	txs := []model.Transaction{
		afnSale(1, 20, "500", "0", "0"),   // customer 20 owes 500
		afnSale(2, 10, "1000", "700", "0"), // customer 10 owes 300
		afnSale(3, 10, "700", "0", "0"),    // customer 10 owes 700
		afnSale(4, 30, "900", "900", "0"),  // settled, excluded
	}

	groups, err := OutstandingLoans(txs, nil)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, int64(10), *groups[0].CustomerID)
	assertDecimal(t, "1000", groups[0].TotalLoan)
	assertDecimal(t, "1700", groups[0].TotalAmount)
	assertDecimal(t, "700", groups[0].TotalPaid)
	assert.Equal(t, 2, groups[0].TransactionsCount)
	assert.Equal(t, int64(20), *groups[1].CustomerID)
	assertDecimal(t, "500", groups[1].TotalLoan)
}

func TestOutstandingLoans_TiesKeepFirstSeenOrder(t *testing.T) {
	groups, err := OutstandingLoans([]model.Transaction{
		afnSale(1, 7, "100", "0", "0"),
		afnSale(2, 3, "100", "0", "0"),
	}, nil)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, int64(7), *groups[0].CustomerID)
	assert.Equal(t, int64(3), *groups[1].CustomerID)
}

func TestOutstandingLoans_ConvertsWithTransactionDayRate(t *testing.T) {
	usd := afnSale(1, 5, "100", "50", "0")
	usd.Currency = model.CurrencyUSD
	usd.CreatedAt = day("2024-02-10").Add(11 * time.Hour)
	rates := NewRateTable([]model.CurrencyRate{
		{Date: day("2024-02-10"), UsdToAfn: d("70")},
		{Date: day("2024-02-11"), UsdToAfn: d("75")},
	})

	groups, err := OutstandingLoans([]model.Transaction{usd}, rates)

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assertDecimal(t, "3500", groups[0].TotalLoan)
	assertDecimal(t, "7000", groups[0].TotalAmount)
}

func TestOutstandingLoans_ForeignWithoutDayRateFails(t *testing.T) {
	usd := afnSale(1, 5, "100", "0", "0")
	usd.Currency = model.CurrencyUSD
	usd.CreatedAt = day("2024-02-12")

	_, err := OutstandingLoans([]model.Transaction{usd}, NewRateTable([]model.CurrencyRate{{Date: day("2024-02-10"), UsdToAfn: d("70")}}))

	assert.ErrorIs(t, err, ErrMissingRate)
}

func TestSupplierBalances(t *testing.T) {
	balances := SupplierBalances([]model.SupplierPurchase{
		{SupplierID: 1, Currency: model.CurrencyAFN, Gram: d("100"), Pasa: d("1.5"), Wage: d("20000"), Paid: d("5000")},
		{SupplierID: 2, Currency: model.CurrencyUSD, Gram: d("50"), Pasa: d("0.5"), Wage: d("300"), Paid: d("300")},
		{SupplierID: 1, Currency: model.CurrencyAFN, Gram: d("40"), Pasa: d("0.5"), Wage: d("8000"), Paid: d("0")},
	})

	require.Len(t, balances, 2)
	assertDecimal(t, "140", balances[0].TotalGram)
	assertDecimal(t, "2", balances[0].TotalPasa)
	assertDecimal(t, "23000", balances[0].RemainingWage)
	assert.Equal(t, 2, balances[0].Purchases)
	assertDecimal(t, "0", balances[1].RemainingWage)
}
