package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("0701234567", "AF")
	assert.NoError(t, err)
	assert.Equal(t, "+93701234567", got)

	got, err = NormalizePhone("+93 70 123 4567", "AF")
	assert.NoError(t, err)
	assert.Equal(t, "+93701234567", got)

	_, err = NormalizePhone("12", "AF")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = NormalizePhone("not a phone", "AF")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
