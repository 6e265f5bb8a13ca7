package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hausmate/hausmate/internal/auth"
	"github.com/hausmate/hausmate/internal/middleware"
)

// NewRouter builds the HTTP routing table. Everything under /api except
// register and login requires a Bearer token.
func NewRouter(h *Handler, jwtManager *auth.JWTManager) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		// Protected routes
		r.With(middleware.RequireAuth(jwtManager)).Group(func(r chi.Router) {
			// Households
			r.Post("/households", h.createHousehold)
			r.Post("/households/join", h.joinHousehold)
			r.Get("/households/{household_id}/members", h.listMembers)
			r.Get("/households/{household_id}/summary", h.householdSummary)

			// Expenses
			r.Post("/expenses", h.createExpense)
			r.Get("/expenses", h.listExpenses)
			r.Get("/expenses/{expense_id}", h.getExpense)
			r.Patch("/expenses/{expense_id}", h.updateExpense)
			r.Delete("/expenses/{expense_id}", h.deleteExpense)
			r.Post("/expenses/{expense_id}/settle", h.settleSplits)

			// Analytics
			r.Get("/users/{user_id}/analytics", h.userAnalytics)

			// Offline sync
			r.Post("/sync/expenses", h.syncExpenses)
		})
	})

	return r
}
