package utils

import (
	"errors"

	"github.com/ttacon/libphonenumber"
)

// ErrInvalidPhone is returned for numbers that do not parse or are not dialable
var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone validates phone for the given default region (e.g. "AF")
// and returns it in E.164 form.
func NormalizePhone(phone, region string) (string, error) {
	num, err := libphonenumber.Parse(phone, region)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}
