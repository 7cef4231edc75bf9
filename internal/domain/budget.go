package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Budget is a month-scoped spending limit. It has no category linkage, and
// multiple budgets per user and month are allowed.
type Budget struct {
	ID        string
	UserEmail string
	Month     string
	Amount    float64
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateMonth strictly validates a canonical "YYYY-MM" month. Width
// matters: "2024-1" is rejected.
func ValidateMonth(month string) (string, error) {
	m := strings.TrimSpace(month)
	if len(m) != 7 || m[4] != '-' || !allDigits(m[:4]) || !allDigits(m[5:]) {
		return "", Validation("Month must be in YYYY-MM format")
	}
	year, _ := strconv.Atoi(m[:4])
	mon, _ := strconv.Atoi(m[5:])
	if year < 2000 || year > 2100 {
		return "", Validation("Invalid year")
	}
	if mon < 1 || mon > 12 {
		return "", Validation("Invalid month")
	}
	return m, nil
}

// NewBudget validates a budget create payload.
func NewBudget(userEmail, month string, amount any, notes string) (*Budget, error) {
	email, err := NormalizeEmail(userEmail)
	if err != nil {
		return nil, err
	}

	m, err := ValidateMonth(month)
	if err != nil {
		return nil, err
	}

	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if value <= 0 {
		return nil, Validation("Amount must be > 0")
	}

	now := time.Now().UTC()
	return &Budget{
		ID:        uuid.NewString(),
		UserEmail: email,
		Month:     m,
		Amount:    value,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
