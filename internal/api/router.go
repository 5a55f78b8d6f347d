package api

import (
	"net/http"

	"eld-trip-service/internal/api/handlers"
	"eld-trip-service/internal/config"
	"eld-trip-service/internal/metrics"
	"eld-trip-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner ports.RoutePlanner, repo ports.TripRepository, limits config.HOSLimits) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Planner: planner,
		Repo:    repo,
		Limits:  limits,
	}
	tripsHandler := &handlers.TripsHandler{Repo: repo}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plan-trip", planHandler.PlanTrip)
	mux.HandleFunc("/trips", tripsHandler.List)
	mux.HandleFunc("/trips/", tripsHandler.Logs)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
