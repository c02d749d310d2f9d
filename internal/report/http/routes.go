package reporthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers report endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	exportLimiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/dashboard", h.handleDashboard)
	r.Get("/summary", h.handleSummary)
	r.Get("/trend", h.handleTrend)
	r.Get("/categories", h.handleCosts)
	r.Get("/debtors", h.handleDebtors)
	r.Get("/activity", h.handleActivity)

	r.Group(func(gr chi.Router) {
		gr.Use(exportLimiter)
		gr.Get("/dashboard.csv", h.handleDashboardCSV)
		gr.Get("/trend.csv", h.handleTrendCSV)
		gr.Get("/debtors.csv", h.handleDebtorsCSV)
	})
}
