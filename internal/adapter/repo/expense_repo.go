package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendtrack/internal/domain"
)

const expenseColumns = "id, user_email, title, amount, category, expense_date, notes, created_at, updated_at"

// ExpenseRepositoryPG implements domain.ExpenseRepository backed by PostgreSQL.
type ExpenseRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepositoryPG.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepositoryPG {
	return &ExpenseRepositoryPG{pool: pool}
}

// Create inserts a validated expense record.
func (r *ExpenseRepositoryPG) Create(ctx context.Context, e *domain.Expense) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO expenses (id, user_email, title, amount, category, expense_date, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.UserEmail, e.Title, e.Amount, e.Category, e.Date, e.Notes, e.CreatedAt, e.UpdatedAt)
	return err
}

// Update applies the non-nil patch fields to the record matching both id and
// owner, returning the merged record. ErrNotFound when nothing matches.
func (r *ExpenseRepositoryPG) Update(ctx context.Context, id, userEmail string, patch *domain.ExpensePatch) (*domain.Expense, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 8)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Date != nil {
		add("expense_date", *patch.Date)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id, userEmail)
	query := fmt.Sprintf(`
UPDATE expenses
SET %s
WHERE id = $%d AND user_email = $%d
RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), expenseColumns)

	row := r.pool.QueryRow(ctx, query, args...)
	return scanExpense(row)
}

// Query returns the owner's expenses ordered by date descending, optionally
// bounded by an inclusive date range, paginated via limit and skip.
func (r *ExpenseRepositoryPG) Query(ctx context.Context, q domain.ExpenseQuery) ([]domain.Expense, error) {
	where := []string{"user_email = $1"}
	args := []any{q.UserEmail}

	if q.DateFrom != "" {
		args = append(args, q.DateFrom)
		where = append(where, fmt.Sprintf("expense_date >= $%d", len(args)))
	}
	if q.DateTo != "" {
		args = append(args, q.DateTo)
		where = append(where, fmt.Sprintf("expense_date <= $%d", len(args)))
	}

	args = append(args, q.Limit, q.Skip)
	query := fmt.Sprintf(`
SELECT %s
FROM expenses
WHERE %s
ORDER BY expense_date DESC
LIMIT $%d OFFSET $%d`,
		expenseColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Expense{}
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.UserEmail, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the record matching both id and owner.
func (r *ExpenseRepositoryPG) Delete(ctx context.Context, id, userEmail string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_email = $2`, id, userEmail)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	if err := row.Scan(&e.ID, &e.UserEmail, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
