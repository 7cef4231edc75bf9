package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"spendtrack/internal/domain"
	"spendtrack/internal/middleware"
)

// In-memory repositories backing the handler tests.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, exists := f.users[u.Email]; exists {
		return domain.Conflict("Email already exists")
	}
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeSettingsRepo struct {
	rows map[string]*domain.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: map[string]*domain.Settings{}}
}

func (f *fakeSettingsRepo) GetOrCreate(_ context.Context, userEmail string) (*domain.Settings, error) {
	if s, ok := f.rows[userEmail]; ok {
		if len(s.Categories) == 0 {
			s.Categories = domain.DefaultCategories()
		}
		cp := *s
		cp.Categories = append([]domain.Category(nil), s.Categories...)
		return &cp, nil
	}
	s := domain.NewSettings(userEmail)
	f.rows[userEmail] = s
	cp := *s
	cp.Categories = append([]domain.Category(nil), s.Categories...)
	return &cp, nil
}

func (f *fakeSettingsRepo) ReplaceCategories(_ context.Context, userEmail string, categories []domain.Category) error {
	s, ok := f.rows[userEmail]
	if !ok {
		return domain.ErrNotFound
	}
	s.Categories = append([]domain.Category(nil), categories...)
	s.UpdatedAt = time.Now().UTC()
	return nil
}

type fakeExpenseRepo struct {
	items map[string]*domain.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{items: map[string]*domain.Expense{}}
}

func (f *fakeExpenseRepo) Create(_ context.Context, e *domain.Expense) error {
	cp := *e
	f.items[e.ID] = &cp
	return nil
}

func (f *fakeExpenseRepo) Update(_ context.Context, id, userEmail string, patch *domain.ExpensePatch) (*domain.Expense, error) {
	e, ok := f.items[id]
	if !ok || e.UserEmail != userEmail {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	e.UpdatedAt = time.Now().UTC()
	cp := *e
	return &cp, nil
}

func (f *fakeExpenseRepo) Query(_ context.Context, q domain.ExpenseQuery) ([]domain.Expense, error) {
	out := []domain.Expense{}
	for _, e := range f.items {
		if e.UserEmail != q.UserEmail {
			continue
		}
		if q.DateFrom != "" && e.Date < q.DateFrom {
			continue
		}
		if q.DateTo != "" && e.Date > q.DateTo {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if q.Skip < len(out) {
		out = out[q.Skip:]
	} else {
		out = out[:0]
	}
	if q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeExpenseRepo) Delete(_ context.Context, id, userEmail string) (bool, error) {
	e, ok := f.items[id]
	if !ok || e.UserEmail != userEmail {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

type fakeBudgetRepo struct {
	items map[string]*domain.Budget
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{items: map[string]*domain.Budget{}}
}

func (f *fakeBudgetRepo) Create(_ context.Context, b *domain.Budget) error {
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeBudgetRepo) List(_ context.Context, q domain.BudgetQuery) ([]domain.Budget, error) {
	out := []domain.Budget{}
	for _, b := range f.items {
		if b.UserEmail != q.UserEmail {
			continue
		}
		if q.Month != "" && b.Month != q.Month {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Skip < len(out) {
		out = out[q.Skip:]
	} else {
		out = out[:0]
	}
	if q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeBudgetRepo) Delete(_ context.Context, id, userEmail string) (bool, error) {
	b, ok := f.items[id]
	if !ok || b.UserEmail != userEmail {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

type testEnv struct {
	app      *App
	users    *fakeUserRepo
	settings *fakeSettingsRepo
	expenses *fakeExpenseRepo
	budgets  *fakeBudgetRepo
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	settings := newFakeSettingsRepo()
	expenses := newFakeExpenseRepo()
	budgets := newFakeBudgetRepo()
	app := NewApp(users, settings, expenses, budgets, zerolog.Nop(), "test-secret", time.Hour)
	return &testEnv{app: app, users: users, settings: settings, expenses: expenses, budgets: budgets}
}

// authedRequest builds a request carrying the authenticated email in its
// context, the way RequireAuth would after token verification.
func authedRequest(t *testing.T, method, target, email string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if email != "" {
		req = req.WithContext(middleware.ContextWithEmail(req.Context(), email))
	}
	return req
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}
