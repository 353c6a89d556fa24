package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/middleware"
)

// NewRouter mounts the display, the refresh action and a health check.
// limiter may be nil to disable refresh throttling.
func NewRouter(h *WeatherHandler, limiter *middleware.RefreshLimiter, logger *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	r.Get("/healthz", HealthHandler)
	r.Route("/weather", func(wr chi.Router) {
		wr.Get("/", h.HandleWeather)
		wr.Group(func(rr chi.Router) {
			if limiter != nil {
				rr.Use(limiter.Middleware)
			}
			rr.Post("/refresh", h.HandleRefresh)
		})
	})
	return r
}
