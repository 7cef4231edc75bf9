package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Pure translation of day/month/year filters into inclusive from/to bounds on
// the canonical date string. No I/O.

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ValidateYear strictly validates a four-digit year in [2000, 2100].
func ValidateYear(year string) (string, error) {
	y := strings.TrimSpace(year)
	if len(y) != 4 || !allDigits(y) {
		return "", Validation("year must be YYYY")
	}
	n, _ := strconv.Atoi(y)
	if n < 2000 || n > 2100 {
		return "", Validation("Invalid year")
	}
	return y, nil
}

// MonthRange expands "YYYY-MM" into its first and last calendar day,
// leap-year aware.
func MonthRange(month string) (string, string, error) {
	m, err := ValidateMonth(month)
	if err != nil {
		return "", "", err
	}
	year, _ := strconv.Atoi(m[:4])
	mon, _ := strconv.Atoi(m[5:])

	// Day zero of the next month is the last day of this one.
	lastDay := time.Date(year, time.Month(mon)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return m + "-01", fmt.Sprintf("%s-%02d", m, lastDay), nil
}

// YearRange expands "YYYY" into January 1 through December 31.
func YearRange(year string) (string, string, error) {
	y, err := ValidateYear(year)
	if err != nil {
		return "", "", err
	}
	return y + "-01-01", y + "-12-31", nil
}

// ResolveRange applies filter precedence: explicit from/to win over month,
// month wins over year. Either explicit bound alone disables the shorthands.
func ResolveRange(from, to, month, year string) (string, string, error) {
	var err error
	if from != "" {
		if from, err = ParseDate(from); err != nil {
			return "", "", err
		}
	}
	if to != "" {
		if to, err = ParseDate(to); err != nil {
			return "", "", err
		}
	}

	if from == "" && to == "" && month != "" {
		return MonthRange(month)
	}
	if from == "" && to == "" && year != "" {
		return YearRange(year)
	}
	return from, to, nil
}
