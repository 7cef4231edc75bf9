package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"spendtrack/internal/domain"
)

// BudgetRepositoryPG implements domain.BudgetRepository backed by PostgreSQL.
type BudgetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepositoryPG.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepositoryPG {
	return &BudgetRepositoryPG{pool: pool}
}

// Create inserts a validated budget. No uniqueness is enforced on
// user+month; duplicates are allowed.
func (r *BudgetRepositoryPG) Create(ctx context.Context, b *domain.Budget) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO budgets (id, user_email, month, amount, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserEmail, b.Month, b.Amount, b.Notes, b.CreatedAt, b.UpdatedAt)
	return err
}

// List returns the owner's budgets newest first, optionally filtered to an
// exact month, paginated via limit and skip.
func (r *BudgetRepositoryPG) List(ctx context.Context, q domain.BudgetQuery) ([]domain.Budget, error) {
	where := []string{"user_email = $1"}
	args := []any{q.UserEmail}

	if q.Month != "" {
		args = append(args, q.Month)
		where = append(where, fmt.Sprintf("month = $%d", len(args)))
	}

	args = append(args, q.Limit, q.Skip)
	query := fmt.Sprintf(`
SELECT id, user_email, month, amount, notes, created_at, updated_at
FROM budgets
WHERE %s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d`,
		strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Budget{}
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.ID, &b.UserEmail, &b.Month, &b.Amount, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete removes the budget matching both id and owner.
func (r *BudgetRepositoryPG) Delete(ctx context.Context, id, userEmail string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_email = $2`, id, userEmail)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
