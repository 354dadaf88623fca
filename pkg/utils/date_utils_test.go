package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRDate(t *testing.T) {
	parsed, err := ParseBRDate("30/06/2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseBRDate("  01/01/2025 ")
	require.NoError(t, err)
	assert.Equal(t, "01/01/2025", FormatBRDate(parsed))

	for _, bad := range []string{"", "2025-06-30", "31/02/2025", "junho"} {
		_, err := ParseBRDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	start := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/01/2025", FormatBRDate(AddDays(start, 1)))

	start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "30/06/2025", FormatBRDate(AddDays(start, 180)))
}

func TestDateOnlyDropsClock(t *testing.T) {
	moment := time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), DateOnly(moment))
}
