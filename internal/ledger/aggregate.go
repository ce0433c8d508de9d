package ledger

import (
	"fmt"
	"sort"
	"strconv"

	"jewelry_store/internal/model"

	"github.com/shopspring/decimal"
)

// ExpensesByType totals expenses per (type, currency) pair. Currencies are
// kept apart, nothing is converted. Groups are ordered by first occurrence.
func ExpensesByType(expenses []model.Expense) []model.ExpenseGroup {
	type key struct {
		typ      string
		currency model.Currency
	}
	index := make(map[key]int)
	var groups []model.ExpenseGroup
	for _, e := range expenses {
		k := key{e.Type, e.Currency}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.ExpenseGroup{Type: e.Type, Currency: e.Currency, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(e.Price)
		groups[i].Count++
	}
	return groups
}

// ExpensesByCurrency totals expenses per currency, ordered by first occurrence.
func ExpensesByCurrency(expenses []model.Expense) []model.CurrencyTotal {
	index := make(map[model.Currency]int)
	var totals []model.CurrencyTotal
	for _, e := range expenses {
		i, ok := index[e.Currency]
		if !ok {
			i = len(totals)
			index[e.Currency] = i
			totals = append(totals, model.CurrencyTotal{Currency: e.Currency, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Price)
		totals[i].Count++
	}
	return totals
}

// IsForeign reports whether the receipt of tx is kept in a foreign currency.
// Rows written before receipts carried a currency fall back to their line items.
func IsForeign(tx model.Transaction) bool {
	if tx.Currency != "" {
		return tx.Currency.IsForeign()
	}
	for _, item := range tx.LineItems {
		if item.SalePrice.Currency.IsForeign() {
			return true
		}
	}
	return false
}

// DailySales folds one day of transactions into base currency totals. Foreign
// receipts are scaled by rateForToday; if one is present and rateForToday is
// nil the whole fold fails with ErrMissingRate.
func DailySales(txs []model.Transaction, rateForToday *decimal.Decimal) (model.DailySales, error) {
	out := model.DailySales{
		TotalAmount:       decimal.Zero,
		RemainingAmount:   decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalGram:         decimal.Zero,
		TotalPurchaseCost: decimal.Zero,
	}
	for _, tx := range txs {
		factor := decimal.NewFromInt(1)
		if IsForeign(tx) {
			if rateForToday == nil {
				return model.DailySales{}, fmt.Errorf("%w: transaction %d is in %s and no rate is set for today", ErrMissingRate, tx.ID, model.CurrencyUSD)
			}
			factor = *rateForToday
		}
		out.TotalAmount = out.TotalAmount.Add(tx.Receipt.TotalAmount.Mul(factor))
		out.RemainingAmount = out.RemainingAmount.Add(tx.Receipt.RemainingAmount.Mul(factor))
		out.TotalDiscount = out.TotalDiscount.Add(tx.Receipt.Discount.Mul(factor))
		for _, item := range tx.LineItems {
			out.TotalGram = out.TotalGram.Add(item.Gram)
			out.TotalPurchaseCost = out.TotalPurchaseCost.Add(item.PurchasePriceToAfn)
			out.LineItemCount++
		}
		out.TransactionCount++
	}
	return out, nil
}

// InventoryValue groups unsold products by (name, karat). Sold products are skipped.
func InventoryValue(products []model.Product) []model.InventoryGroup {
	type key struct {
		name  string
		karat int
	}
	index := make(map[key]int)
	var groups []model.InventoryGroup
	for _, p := range products {
		if p.IsSold {
			continue
		}
		k := key{p.ProductName, p.Karat}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.InventoryGroup{
				ProductName:          p.ProductName,
				Karat:                p.Karat,
				TotalGold:            decimal.Zero,
				TotalPurchaseCostAfn: decimal.Zero,
			})
		}
		groups[i].TotalGold = groups[i].TotalGold.Add(p.Gram)
		groups[i].TotalPurchaseCostAfn = groups[i].TotalPurchaseCostAfn.Add(p.PurchasePriceToAfn)
		groups[i].Count++
	}
	return groups
}

func customerKey(tx model.Transaction) string {
	if tx.CustomerID != nil {
		return "id:" + strconv.FormatInt(*tx.CustomerID, 10)
	}
	return "walkin:" + tx.CustomerName + "|" + tx.CustomerPhone
}

// OutstandingLoans groups unpaid balances by customer, largest loan first.
// Foreign receipts are converted with the rate of the day they were created;
// rates may be nil when every receipt is in the base currency.
func OutstandingLoans(txs []model.Transaction, rates RateTable) ([]model.LoanGroup, error) {
	index := make(map[string]int)
	var groups []model.LoanGroup
	for _, tx := range txs {
		if !tx.Receipt.RemainingAmount.IsPositive() {
			continue
		}
		factor := decimal.NewFromInt(1)
		if IsForeign(tx) {
			rate, ok := rates.For(tx.CreatedAt)
			if !ok {
				return nil, fmt.Errorf("%w: no rate for %s needed by transaction %d", ErrMissingRate, DayKey(tx.CreatedAt), tx.ID)
			}
			factor = rate
		}

		k := customerKey(tx)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.LoanGroup{
				CustomerID:    tx.CustomerID,
				CustomerName:  tx.CustomerName,
				CustomerPhone: tx.CustomerPhone,
				TotalAmount:   decimal.Zero,
				TotalLoan:     decimal.Zero,
				TotalPaid:     decimal.Zero,
				TotalDiscount: decimal.Zero,
			})
		}
		g := &groups[i]
		g.TotalAmount = g.TotalAmount.Add(tx.Receipt.TotalAmount.Mul(factor))
		g.TotalLoan = g.TotalLoan.Add(tx.Receipt.RemainingAmount.Mul(factor))
		g.TotalPaid = g.TotalPaid.Add(tx.Receipt.PaidAmount.Mul(factor))
		g.TotalDiscount = g.TotalDiscount.Add(tx.Receipt.Discount.Mul(factor))
		g.TransactionsCount++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].TotalLoan.GreaterThan(groups[b].TotalLoan)
	})
	return groups, nil
}

// SupplierBalances totals purchases per (supplier, currency), ordered by first occurrence.
func SupplierBalances(purchases []model.SupplierPurchase) []model.SupplierBalance {
	type key struct {
		supplierID int64
		currency   model.Currency
	}
	index := make(map[key]int)
	var balances []model.SupplierBalance
	for _, p := range purchases {
		k := key{p.SupplierID, p.Currency}
		i, ok := index[k]
		if !ok {
			i = len(balances)
			index[k] = i
			balances = append(balances, model.SupplierBalance{
				SupplierID: p.SupplierID,
				Currency:   p.Currency,
				TotalGram:  decimal.Zero,
				TotalPasa:  decimal.Zero,
				TotalWage:  decimal.Zero,
				TotalPaid:  decimal.Zero,
			})
		}
		b := &balances[i]
		b.TotalGram = b.TotalGram.Add(p.Gram)
		b.TotalPasa = b.TotalPasa.Add(p.Pasa)
		b.TotalWage = b.TotalWage.Add(p.Wage)
		b.TotalPaid = b.TotalPaid.Add(p.Paid)
		b.Purchases++
	}
	for i := range balances {
		balances[i].RemainingWage = balances[i].TotalWage.Sub(balances[i].TotalPaid)
	}
	return balances
}
