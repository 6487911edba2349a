package main

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/mohamedkhairy/stock-alerter/internal/stock"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// health tracks whether the processor is currently consuming updates
type health struct {
	processing atomic.Bool
}

func (h *health) set(v bool) {
	h.processing.Store(v)
}

// setupHealthAndMetricsServer sets up HTTP endpoints for health checks and metrics
func setupHealthAndMetricsServer(ex *stock.Exchange, running *health) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		healthStatus := map[string]interface{}{
			"status":    "UP",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks": map[string]interface{}{
				"processor": map[string]interface{}{
					"status":  "ok",
					"running": running.processing.Load(),
				},
				"exchange": map[string]interface{}{
					"status":       "ok",
					"symbol_count": ex.Len(),
				},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(healthStatus)
	}).Methods("GET")

	// Liveness probe
	router.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("LIVE"))
	}).Methods("GET")

	// Metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	return router
}
