package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"spendtrack/internal/domain"
)

type budgetCreateRequest struct {
	Month  string `json:"month"`
	Amount any    `json:"amount"`
	Notes  string `json:"notes"`
}

// BudgetsCreate persists a month-scoped budget. Budgets are not
// category-aware and duplicates per month are allowed.
func (a *App) BudgetsCreate(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)

	var req budgetCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	budget, err := domain.NewBudget(email, req.Month, req.Amount, req.Notes)
	if err != nil {
		a.handleError(w, r, err, "Budget not found")
		return
	}
	if err := a.Budgets.Create(r.Context(), budget); err != nil {
		a.handleError(w, r, err, "Budget not found")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Budget created",
		"budget":  toBudgetDTO(budget),
	})
}

// BudgetsList returns the owner's budgets newest first, optionally filtered
// to an exact month.
func (a *App) BudgetsList(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)
	params := r.URL.Query()

	month := params.Get("month")
	if month != "" {
		var err error
		if month, err = domain.ValidateMonth(month); err != nil {
			a.handleError(w, r, err, "Budget not found")
			return
		}
	}

	limit, err := queryInt(params.Get("limit"), defaultLimit, "limit")
	if err != nil {
		a.handleError(w, r, err, "Budget not found")
		return
	}
	skip, err := queryInt(params.Get("skip"), defaultSkip, "skip")
	if err != nil {
		a.handleError(w, r, err, "Budget not found")
		return
	}

	items, err := a.Budgets.List(r.Context(), domain.BudgetQuery{
		UserEmail: email,
		Month:     month,
		Limit:     limit,
		Skip:      skip,
	})
	if err != nil {
		a.handleError(w, r, err, "Budget not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"budgets": toBudgetDTOs(items),
	})
}

// BudgetsDelete removes a budget matching both id and owner.
func (a *App) BudgetsDelete(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid budget id")
		return
	}

	ok, err := a.Budgets.Delete(r.Context(), id, email)
	if err != nil {
		a.handleError(w, r, err, "Budget not found")
		return
	}
	if !ok {
		a.fail(w, http.StatusNotFound, "Budget not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Budget deleted",
	})
}
