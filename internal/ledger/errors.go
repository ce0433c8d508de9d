// Package ledger holds the money rules of the shop: currency conversion,
// gold pricing, report aggregation and repayment bookkeeping. It performs no
// I/O; callers pass in records they have already loaded.
package ledger

import "errors"

var (
	// ErrValidation is returned for malformed or out-of-range input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMissingRate is returned when a conversion needs a rate that is not on file.
	ErrMissingRate = errors.New("missing exchange rate")
	// ErrConflict is returned when a concurrent update won the race.
	ErrConflict = errors.New("conflict")
)
