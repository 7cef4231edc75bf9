package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"spendtrack/internal/domain"
)

// SettingsRepositoryPG implements domain.SettingsRepository backed by
// PostgreSQL. The category list lives in a jsonb column, mirroring the
// one-settings-document-per-user shape.
type SettingsRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepositoryPG.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepositoryPG {
	return &SettingsRepositoryPG{pool: pool}
}

// GetOrCreate returns the user's settings row, inserting one seeded with the
// default categories when absent. A row whose category list is empty is
// repaired in place.
func (r *SettingsRepositoryPG) GetOrCreate(ctx context.Context, userEmail string) (*domain.Settings, error) {
	s, err := r.get(ctx, userEmail)
	if err == nil {
		if len(s.Categories) == 0 {
			s.Categories = domain.DefaultCategories()
			if err := r.ReplaceCategories(ctx, userEmail, s.Categories); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	fresh := domain.NewSettings(userEmail)
	raw, err := json.Marshal(fresh.Categories)
	if err != nil {
		return nil, fmt.Errorf("marshal categories: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
INSERT INTO settings (id, user_email, categories, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_email) DO NOTHING`,
		fresh.ID, fresh.UserEmail, raw, fresh.CreatedAt, fresh.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// Lost the insert race to a concurrent request; their row wins.
		return r.get(ctx, userEmail)
	}
	return fresh, nil
}

// ReplaceCategories stores the full category list for the user. Uniqueness
// checks happen before this call and are not re-verified here.
func (r *SettingsRepositoryPG) ReplaceCategories(ctx context.Context, userEmail string, categories []domain.Category) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE settings
SET categories = $2, updated_at = $3
WHERE user_email = $1`,
		userEmail, raw, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SettingsRepositoryPG) get(ctx context.Context, userEmail string) (*domain.Settings, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_email, categories, created_at, updated_at
FROM settings
WHERE user_email = $1`, userEmail)

	var s domain.Settings
	var raw []byte
	if err := row.Scan(&s.ID, &s.UserEmail, &raw, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.Categories); err != nil {
			return nil, fmt.Errorf("unmarshal categories: %w", err)
		}
	}
	return &s, nil
}
