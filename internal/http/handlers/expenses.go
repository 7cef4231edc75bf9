package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"spendtrack/internal/domain"
)

const (
	defaultLimit = 200
	defaultSkip  = 0
)

type expenseCreateRequest struct {
	Title    string `json:"title"`
	Amount   any    `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

// ExpensesCreate validates the payload against the user's current category
// registry and persists it.
func (a *App) ExpensesCreate(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)

	var req expenseCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	allowed, err := a.allowedCategories(r, email)
	if err != nil {
		a.handleError(w, r, err, "Settings not found")
		return
	}

	exp, err := domain.NewExpense(email, req.Title, req.Amount, req.Category, req.Date, req.Notes, allowed)
	if err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}
	if err := a.Expenses.Create(r.Context(), exp); err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Expense added",
		"expense": toExpenseDTO(exp),
	})
}

// ExpensesList returns the owner's expenses. Explicit from/to bounds win over
// month, month over year; results are date-descending and paginated.
func (a *App) ExpensesList(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)
	params := r.URL.Query()

	from, to, err := domain.ResolveRange(
		params.Get("from"),
		params.Get("to"),
		params.Get("month"),
		params.Get("year"),
	)
	if err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}

	limit, err := queryInt(params.Get("limit"), defaultLimit, "limit")
	if err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}
	skip, err := queryInt(params.Get("skip"), defaultSkip, "skip")
	if err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}

	items, err := a.Expenses.Query(r.Context(), domain.ExpenseQuery{
		UserEmail: email,
		DateFrom:  from,
		DateTo:    to,
		Limit:     limit,
		Skip:      skip,
	})
	if err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success":  true,
		"expenses": toExpenseDTOs(items),
	})
}

// ExpensesUpdate applies a partial patch, revalidated against the current
// category registry, scoped to id and owner.
func (a *App) ExpensesUpdate(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	allowed, err := a.allowedCategories(r, email)
	if err != nil {
		a.handleError(w, r, err, "Settings not found")
		return
	}

	patch, err := domain.ParseExpensePatch(raw, allowed)
	if err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}

	updated, err := a.Expenses.Update(r.Context(), id, email, patch)
	if err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Expense updated",
		"expense": toExpenseDTO(updated),
	})
}

// ExpensesDelete removes an expense matching both id and owner.
func (a *App) ExpensesDelete(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	ok, err := a.Expenses.Delete(r.Context(), id, email)
	if err != nil {
		a.handleError(w, r, err, "Expense not found")
		return
	}
	if !ok {
		a.fail(w, http.StatusNotFound, "Expense not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Expense deleted",
	})
}

func queryInt(raw string, fallback int, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validation("Invalid " + name)
	}
	return n, nil
}
