package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("05/03/2024")
	assert.Error(t, err)
}

func TestDayOrToday(t *testing.T) {
	now := time.Date(2024, 3, 5, 22, 15, 0, 0, time.UTC)
	d, err := DayOrToday("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestEndOfDay(t *testing.T) {
	end := EndOfDay(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC), end)
}
