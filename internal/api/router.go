package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/alauddinGen-Z/unilanguage/internal/booking"
)

type RouterConfig struct {
	Validator *booking.Validator
	Service   *booking.Service
	Redis     *redis.Client // nil when the in-memory slot cache is used
	Env       string
	Version   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/booking", getSlotsHandler(cfg.Validator, cfg.Service))
	r.Post("/booking", createBookingHandler(cfg.Validator, cfg.Service))

	return r
}
