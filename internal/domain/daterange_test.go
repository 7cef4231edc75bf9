package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		month string
		from  string
		to    string
	}{
		{month: "2024-02", from: "2024-02-01", to: "2024-02-29"}, // leap year
		{month: "2023-02", from: "2023-02-01", to: "2023-02-28"},
		{month: "2100-02", from: "2100-02-01", to: "2100-02-28"}, // century, not a leap year
		{month: "2024-04", from: "2024-04-01", to: "2024-04-30"},
		{month: "2024-12", from: "2024-12-01", to: "2024-12-31"},
		{month: "2024-01", from: "2024-01-01", to: "2024-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			from, to, err := MonthRange(tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}

	_, _, err := MonthRange("2024-13")
	assert.EqualError(t, err, "Invalid month")
}

func TestYearRange(t *testing.T) {
	from, to, err := YearRange("2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2024-12-31", to)

	for _, bad := range []string{"24", "20245", "abcd", ""} {
		_, _, err := YearRange(bad)
		require.Error(t, err, "year %q", bad)
		assert.EqualError(t, err, "year must be YYYY")
	}
	_, _, err = YearRange("1999")
	assert.EqualError(t, err, "Invalid year")
}

func TestResolveRangePrecedence(t *testing.T) {
	// Explicit bounds win over month and year.
	from, to, err := ResolveRange("2024-03-05", "2024-03-09", "2024-01", "2023")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", from)
	assert.Equal(t, "2024-03-09", to)

	// A single explicit bound disables the shorthands.
	from, to, err = ResolveRange("2024-03-05", "", "2024-01", "2023")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", from)
	assert.Equal(t, "", to)

	// Month beats year.
	from, to, err = ResolveRange("", "", "2024-02", "2023")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-02-29", to)

	// Year alone.
	from, to, err = ResolveRange("", "", "", "2023")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01", from)
	assert.Equal(t, "2023-12-31", to)

	// Nothing set means unbounded.
	from, to, err = ResolveRange("", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "", from)
	assert.Equal(t, "", to)

	// Malformed explicit bound fails instead of falling through.
	_, _, err = ResolveRange("05/03/2024", "", "2024-01", "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
