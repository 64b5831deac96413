package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes returns the gateway router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.HandleIndex)
	r.Handle("/static/*", h.StaticHandler())
	r.Get("/health", h.HandleHealth)
	r.Handle("/metrics", h.metrics.Handler())

	r.Group(func(r chi.Router) {
		if h.cfg.RateLimit > 0 {
			r.Use(NewRateLimiter(h.cfg.RateLimit, h.cfg.RateBurst).Middleware)
		}
		r.Post("/process", h.HandleProcess)
	})

	return r
}
