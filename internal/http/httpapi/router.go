package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"spendtrack/internal/http/handlers"
	"spendtrack/internal/middleware"
)

// NewRouter mounts the API surface. Everything but health and the signin
// endpoints sits behind the bearer middleware.
func NewRouter(app *handlers.App, corsOrigins []string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(logger), middleware.CORS(corsOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.Signup)
			r.Post("/signin", app.Signin)
			r.With(middleware.RequireAuth(app.JWTSecret)).Get("/me", app.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(app.JWTSecret))

			r.Route("/settings/categories", func(r chi.Router) {
				r.Get("/", app.CategoriesList)
				r.Post("/", app.CategoriesCreate)
				r.Delete("/{name}", app.CategoriesDelete)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/add", app.ExpensesCreate)
				r.Get("/", app.ExpensesList)
				r.Put("/{id}", app.ExpensesUpdate)
				r.Delete("/{id}", app.ExpensesDelete)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Post("/add", app.BudgetsCreate)
				r.Get("/", app.BudgetsList)
				r.Delete("/{id}", app.BudgetsDelete)
			})
		})
	})

	return r
}
