package ledger

import (
	"fmt"
	"time"

	"jewelry_store/internal/model"

	"github.com/shopspring/decimal"
)

// Due is what the customer owes before any payment: total minus discount.
func Due(r model.Receipt) decimal.Decimal {
	return r.TotalAmount.Sub(r.Discount)
}

// State classifies a receipt by its remaining balance.
func State(r model.Receipt) model.BalanceState {
	switch {
	case !r.RemainingAmount.IsPositive():
		return model.BalanceSettled
	case r.RemainingAmount.GreaterThanOrEqual(Due(r)):
		return model.BalanceUnpaid
	default:
		return model.BalancePartiallyPaid
	}
}

// NewReceipt builds the receipt of a new sale. paid may be zero.
func NewReceipt(total, discount, paid decimal.Decimal) (model.Receipt, error) {
	total = total.Round(AmountScale)
	discount = discount.Round(AmountScale)
	paid = paid.Round(AmountScale)
	if !total.IsPositive() {
		return model.Receipt{}, fmt.Errorf("%w: total amount must be greater than zero", ErrValidation)
	}
	if discount.IsNegative() || paid.IsNegative() {
		return model.Receipt{}, fmt.Errorf("%w: discount and paid amount cannot be negative", ErrValidation)
	}
	remaining := total.Sub(paid).Sub(discount)
	if remaining.IsNegative() {
		return model.Receipt{}, fmt.Errorf("%w: paid amount and discount exceed the total of %s", ErrValidation, total)
	}
	return model.Receipt{
		Discount:        discount,
		TotalAmount:     total,
		PaidAmount:      paid,
		RemainingAmount: remaining,
	}, nil
}

// AmountScale is the number of decimal places money columns keep.
const AmountScale int32 = 4

// ApplyPayment applies a repayment of amount in currency to tx. rate is today's
// USD to AFN rate, nil if none is on file; it is only consulted when the
// payment currency differs from the receipt currency. On error tx is untouched.
func ApplyPayment(tx *model.Transaction, amount decimal.Decimal, currency model.Currency, rate *decimal.Decimal, now time.Time) (model.Payment, error) {
	if tx == nil {
		return model.Payment{}, fmt.Errorf("%w: transaction", ErrNotFound)
	}
	bookCurrency := tx.Currency
	if bookCurrency == "" {
		bookCurrency = model.BaseCurrency
	}

	amount = amount.Round(AmountScale)
	converted, err := Convert(amount, currency, bookCurrency, rate)
	if err != nil {
		return model.Payment{}, err
	}
	if !amount.IsPositive() {
		return model.Payment{}, fmt.Errorf("%w: payment amount must be greater than zero", ErrValidation)
	}
	// paid and remaining are stored at AmountScale, so the receipt moves by
	// exactly what gets persisted
	converted = converted.Round(AmountScale)
	if !converted.IsPositive() {
		return model.Payment{}, fmt.Errorf("%w: payment of %s %s is too small to record in %s",
			ErrValidation, amount.String(), currency, bookCurrency)
	}
	if converted.GreaterThan(tx.Receipt.RemainingAmount) {
		return model.Payment{}, fmt.Errorf("%w: payment of %s %s exceeds the remaining %s %s",
			ErrValidation, converted.StringFixed(2), bookCurrency, tx.Receipt.RemainingAmount.StringFixed(2), bookCurrency)
	}

	tx.Receipt.PaidAmount = tx.Receipt.PaidAmount.Add(converted)
	tx.Receipt.RemainingAmount = tx.Receipt.RemainingAmount.Sub(converted)
	tx.UpdatedAt = now

	p := model.Payment{
		TransactionID:   tx.ID,
		Amount:          amount,
		Currency:        currency,
		ConvertedAmount: converted,
		CreatedAt:       now,
	}
	if currency != bookCurrency {
		r := *rate
		p.Rate = &r
	}
	return p, nil
}
