package domain

import "context"

// UserRepository defines access methods for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// SettingsRepository persists the per-user category registry.
type SettingsRepository interface {
	// GetOrCreate returns the settings row, seeding defaults when the row is
	// absent and repairing an empty category list in place.
	GetOrCreate(ctx context.Context, userEmail string) (*Settings, error)
	// ReplaceCategories stores the full category list. The surrounding
	// read-check-write sequence is not transactional.
	ReplaceCategories(ctx context.Context, userEmail string, categories []Category) error
}

// ExpenseQuery bounds an owner-scoped expense read. Limit and Skip are passed
// through unclamped; callers guard against abuse.
type ExpenseQuery struct {
	UserEmail string
	DateFrom  string
	DateTo    string
	Limit     int
	Skip      int
}

// ExpenseRepository persists validated expense records.
type ExpenseRepository interface {
	Create(ctx context.Context, e *Expense) error
	// Update applies a partial patch scoped to id and owner, returning the
	// merged record. ErrNotFound when no record matches both.
	Update(ctx context.Context, id, userEmail string, patch *ExpensePatch) (*Expense, error)
	// Query returns the owner's expenses, optionally bounded by an inclusive
	// date range, sorted by date descending.
	Query(ctx context.Context, q ExpenseQuery) ([]Expense, error)
	// Delete removes the record matching both id and owner, reporting
	// whether exactly one was removed.
	Delete(ctx context.Context, id, userEmail string) (bool, error)
}

// BudgetQuery bounds an owner-scoped budget read.
type BudgetQuery struct {
	UserEmail string
	Month     string
	Limit     int
	Skip      int
}

// BudgetRepository persists month-scoped budgets.
type BudgetRepository interface {
	Create(ctx context.Context, b *Budget) error
	List(ctx context.Context, q BudgetQuery) ([]Budget, error)
	Delete(ctx context.Context, id, userEmail string) (bool, error)
}
