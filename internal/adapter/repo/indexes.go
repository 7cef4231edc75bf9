package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// indexSpec pairs an index name with the key shape it must have and the
// statement that creates it.
type indexSpec struct {
	name   string
	keys   string // key expression expected inside the index definition
	create string
}

var desiredIndexes = []indexSpec{
	{
		name:   "idx_expenses_user_date_desc",
		keys:   "(user_email, expense_date DESC)",
		create: "CREATE INDEX idx_expenses_user_date_desc ON expenses (user_email, expense_date DESC)",
	},
	{
		name:   "idx_expenses_user_created_desc",
		keys:   "(user_email, created_at DESC)",
		create: "CREATE INDEX idx_expenses_user_created_desc ON expenses (user_email, created_at DESC)",
	},
	{
		name:   "idx_budgets_user_month",
		keys:   "(user_email, month)",
		create: "CREATE INDEX idx_budgets_user_month ON budgets (user_email, month)",
	},
	{
		name:   "idx_budgets_user_created_desc",
		keys:   "(user_email, created_at DESC)",
		create: "CREATE INDEX idx_budgets_user_created_desc ON budgets (user_email, created_at DESC)",
	},
	{
		name:   "idx_budgets_user_month_created_desc",
		keys:   "(user_email, month, created_at DESC)",
		create: "CREATE INDEX idx_budgets_user_month_created_desc ON budgets (user_email, month, created_at DESC)",
	},
}

// indexQuerier is the slice of pgxpool.Pool the index maintenance needs.
type indexQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EnsureIndexes reconciles the desired secondary indexes. An index whose
// stored definition no longer matches the desired key shape is dropped and
// recreated; duplicate-object conflicts get one drop-and-retry. Failures are
// logged and swallowed so index drift never blocks request handling.
func EnsureIndexes(ctx context.Context, db indexQuerier, logger zerolog.Logger) {
	for _, spec := range desiredIndexes {
		ensureIndex(ctx, db, logger, spec)
	}
}

func ensureIndex(ctx context.Context, db indexQuerier, logger zerolog.Logger, spec indexSpec) {
	var def string
	err := db.QueryRow(ctx, `SELECT indexdef FROM pg_indexes WHERE indexname = $1`, spec.name).Scan(&def)
	switch {
	case err == nil:
		if strings.Contains(def, spec.keys) {
			return
		}
		// Same name, different shape: drop and fall through to recreate.
		if _, err := db.Exec(ctx, "DROP INDEX IF EXISTS "+spec.name); err != nil {
			logger.Warn().Err(err).Str("index", spec.name).Msg("drop stale index failed")
			return
		}
	case errors.Is(err, pgx.ErrNoRows):
		// Missing, create below.
	default:
		logger.Warn().Err(err).Str("index", spec.name).Msg("inspect index failed")
		return
	}

	if err := createIndex(ctx, db, spec); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P07" {
			// Conflicting object appeared concurrently; drop and retry once.
			if _, err := db.Exec(ctx, "DROP INDEX IF EXISTS "+spec.name); err == nil {
				err = createIndex(ctx, db, spec)
			}
		}
		if err != nil {
			logger.Warn().Err(err).Str("index", spec.name).Msg("create index failed")
		}
	}
}

func createIndex(ctx context.Context, db indexQuerier, spec indexSpec) error {
	_, err := db.Exec(ctx, spec.create)
	return err
}
