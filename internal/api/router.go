package api

import (
	"net/http"
	"smartroute-service/internal/api/handlers"
	"smartroute-service/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(plans *handlers.PlanHandler, shipments *handlers.ShipmentHandler, health *handlers.Health, limiter *rate.Limiter) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	mux.Handle("/health", health)
	mux.HandleFunc("/shipments", shipments.List)
	mux.Handle("/plans", rateLimit(limiter, http.HandlerFunc(plans.Create)))
	mux.HandleFunc("/plans/latest", plans.Latest)
	mux.HandleFunc("/plans/latest/download", plans.Download)
	mux.HandleFunc("/plans/latest/map", plans.Map)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux, mux))
}
