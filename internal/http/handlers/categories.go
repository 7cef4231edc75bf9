package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoriesList returns the registry sorted by case-insensitive name,
// creating it with defaults on first access.
func (a *App) CategoriesList(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)

	settings, err := a.Settings.GetOrCreate(r.Context(), email)
	if err != nil {
		a.handleError(w, r, err, "Settings not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": toCategoryDTOs(settings.SortedCategories()),
	})
}

// CategoriesCreate adds a category, allocating a color when none is given.
// The uniqueness check and the write are separate steps; concurrent adds of
// the same name can both pass the check.
func (a *App) CategoriesCreate(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	settings, err := a.Settings.GetOrCreate(r.Context(), email)
	if err != nil {
		a.handleError(w, r, err, "Settings not found")
		return
	}

	if _, err := settings.AddCategory(req.Name, req.Color); err != nil {
		a.handleError(w, r, err, "Category not found")
		return
	}
	if err := a.Settings.ReplaceCategories(r.Context(), email, settings.Categories); err != nil {
		a.handleError(w, r, err, "Settings not found")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"success":    true,
		"message":    "Category added",
		"categories": toCategoryDTOs(settings.SortedCategories()),
	})
}

// CategoriesDelete removes a category by name, matched case-insensitively.
// "Other" is protected. Expenses referencing the removed name keep it.
func (a *App) CategoriesDelete(w http.ResponseWriter, r *http.Request) {
	email := a.currentEmail(r)

	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	settings, err := a.Settings.GetOrCreate(r.Context(), email)
	if err != nil {
		a.handleError(w, r, err, "Settings not found")
		return
	}

	if err := settings.RemoveCategory(name); err != nil {
		a.handleError(w, r, err, "Category not found")
		return
	}
	if err := a.Settings.ReplaceCategories(r.Context(), email, settings.Categories); err != nil {
		a.handleError(w, r, err, "Settings not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Category deleted",
		"categories": toCategoryDTOs(settings.SortedCategories()),
	})
}
