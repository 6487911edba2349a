package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors shared by the alerter packages

var (
	StockUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_updates_total",
			Help: "Total number of accepted stock price updates",
		},
		[]string{"symbol"},
	)

	StockUpdateErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_update_errors_total",
			Help: "Total number of rejected stock price updates",
		},
		[]string{"reason"},
	)

	AlertsFiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_fired_total",
			Help: "Total number of alert actions executed after a rule matched",
		},
		[]string{"rule"},
	)

	AlertsSuppressedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_suppressed_total",
			Help: "Total number of rule matches suppressed by cooldown",
		},
		[]string{"rule"},
	)

	ActionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_errors_total",
			Help: "Total number of failed action executions",
		},
		[]string{"action"},
	)
)
