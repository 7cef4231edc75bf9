package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// dateLayout is the canonical calendar date format. Anything else, including
// otherwise valid dates in a different shape, is rejected.
const dateLayout = "2006-01-02"

// Expense is a validated spending record. Date is the canonical "YYYY-MM-DD"
// string so range filters compare lexically.
type Expense struct {
	ID        string
	UserEmail string
	Title     string
	Amount    float64
	Category  string
	Date      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseDate strictly parses a canonical "YYYY-MM-DD" date.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(dateLayout) {
		return "", Validation("Date must be in YYYY-MM-DD format")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil || t.Format(dateLayout) != s {
		return "", Validation("Date must be in YYYY-MM-DD format")
	}
	return s, nil
}

// ParseAmount coerces a decoded JSON value (number or numeric string) to a
// float. The client sends both shapes.
func ParseAmount(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, Validation("Amount must be a number")
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, Validation("Amount must be a number")
		}
		return f, nil
	default:
		return 0, Validation("Amount must be a number")
	}
}

// normalizeExpenseCategory collapses whitespace and defaults the empty value
// to "Other".
func normalizeExpenseCategory(cat string) (string, error) {
	cat = strings.Join(strings.Fields(strings.TrimSpace(cat)), " ")
	if cat == "" {
		return CategoryOther, nil
	}
	if utf8.RuneCountInString(cat) > 32 {
		return "", Validation("Category must be <= 32 characters")
	}
	return cat, nil
}

// categoryAllowed checks membership in the caller-supplied registry snapshot.
// "Other" is always implicitly allowed; a nil snapshot does not block.
func categoryAllowed(category string, allowed map[string]struct{}) bool {
	if allowed == nil {
		return true
	}
	if category == CategoryOther {
		return true
	}
	_, ok := allowed[category]
	return ok
}

// NewExpense validates and normalizes a create payload against the user's
// current category set.
func NewExpense(userEmail, title string, amount any, category, date, notes string, allowed map[string]struct{}) (*Expense, error) {
	email, err := NormalizeEmail(userEmail)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, Validation("Title is required")
	}
	notes = strings.TrimSpace(notes)

	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if value <= 0 {
		return nil, Validation("Amount must be > 0")
	}

	if strings.TrimSpace(date) == "" {
		return nil, Validation("Date is required")
	}
	dateISO, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	cat, err := normalizeExpenseCategory(category)
	if err != nil {
		return nil, err
	}
	if !categoryAllowed(cat, allowed) {
		return nil, Validation("Invalid category")
	}

	now := time.Now().UTC()
	return &Expense{
		ID:        uuid.NewString(),
		UserEmail: email,
		Title:     title,
		Amount:    value,
		Category:  cat,
		Date:      dateISO,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ExpensePatch carries the recognized, already validated fields of a partial
// update. Nil fields are untouched.
type ExpensePatch struct {
	Title    *string
	Amount   *float64
	Category *string
	Date     *string
	Notes    *string
}

// ParseExpensePatch picks the recognized fields out of a raw patch document,
// revalidating each with the create rules. Unrecognized keys are ignored; a
// patch with no recognized fields fails.
func ParseExpensePatch(raw map[string]json.RawMessage, allowed map[string]struct{}) (*ExpensePatch, error) {
	patch := &ExpensePatch{}
	touched := false

	for key, value := range raw {
		switch key {
		case "title":
			s, err := decodeString(value)
			if err != nil || strings.TrimSpace(s) == "" {
				return nil, Validation("Title is required")
			}
			title := strings.TrimSpace(s)
			patch.Title = &title

		case "amount":
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return nil, Validation("Amount must be a number")
			}
			f, err := ParseAmount(v)
			if err != nil {
				return nil, err
			}
			if f <= 0 {
				return nil, Validation("Amount must be > 0")
			}
			patch.Amount = &f

		case "category":
			s, err := decodeString(value)
			if err != nil {
				return nil, Validation("Invalid category")
			}
			cat, err := normalizeExpenseCategory(s)
			if err != nil {
				return nil, err
			}
			if !categoryAllowed(cat, allowed) {
				return nil, Validation("Invalid category")
			}
			patch.Category = &cat

		case "date":
			s, err := decodeString(value)
			if err != nil || strings.TrimSpace(s) == "" {
				return nil, Validation("Date is required")
			}
			d, err := ParseDate(s)
			if err != nil {
				return nil, err
			}
			patch.Date = &d

		case "notes":
			s, err := decodeString(value)
			if err != nil {
				return nil, Validation("Notes must be a string")
			}
			notes := strings.TrimSpace(s)
			patch.Notes = &notes

		default:
			continue
		}
		touched = true
	}

	if !touched {
		return nil, Validation("No valid fields to update")
	}
	return patch, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}
