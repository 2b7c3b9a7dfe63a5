package wordlehttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts the API. The /v1 routes share limiter; health and metrics are unlimited.
func NewRouter(h *Handlers, limiter *IPRateLimiter, gatherer prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CorrelationMiddleware)

	r.Get("/healthz", h.Healthz)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(limiter))
		r.Post("/messages", h.PostMessage)
		r.Get("/leaderboards/daily/{puzzle}", h.GetDailyBoard)
		r.Get("/leaderboards/monthly/{year}/{month}", h.GetMonthlyBoard)
	})

	return r
}
