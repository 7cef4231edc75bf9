package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"spendtrack/internal/domain"
	"spendtrack/internal/middleware"
)

// App bundles the repositories and settings the HTTP layer needs. Everything
// is injected at construction; there is no process-global state.
type App struct {
	Users     domain.UserRepository
	Settings  domain.SettingsRepository
	Expenses  domain.ExpenseRepository
	Budgets   domain.BudgetRepository
	Logger    zerolog.Logger
	JWTSecret string
	TokenTTL  time.Duration
}

// NewApp wires the handler container.
func NewApp(users domain.UserRepository, settings domain.SettingsRepository, expenses domain.ExpenseRepository, budgets domain.BudgetRepository, logger zerolog.Logger, jwtSecret string, tokenTTL time.Duration) *App {
	return &App{
		Users:     users,
		Settings:  settings,
		Expenses:  expenses,
		Budgets:   budgets,
		Logger:    logger,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) fail(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]any{"success": false, "message": msg})
}

// handleError maps domain errors onto the response envelope. notFoundMsg is
// the client message used when err is ErrNotFound; store errors are logged
// and downgraded to a generic message.
func (a *App) handleError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case domain.IsValidation(err):
		a.fail(w, http.StatusBadRequest, err.Error())
	case domain.IsConflict(err):
		a.fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.fail(w, http.StatusNotFound, notFoundMsg)
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.fail(w, http.StatusInternalServerError, "Server error")
	}
}

func (a *App) currentEmail(r *http.Request) string {
	return middleware.EmailFromContext(r.Context())
}

// allowedCategories snapshots the user's current registry names for expense
// validation. The settings read also lazily creates the registry.
func (a *App) allowedCategories(r *http.Request, email string) (map[string]struct{}, error) {
	settings, err := a.Settings.GetOrCreate(r.Context(), email)
	if err != nil {
		return nil, err
	}
	return settings.CategoryNames(), nil
}
