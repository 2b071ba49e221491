// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_admin_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "race_admin_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	AccountsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_admin_accounts_imported_total",
			Help: "Accounts inserted by add and import, by kind",
		},
		[]string{"kind"},
	)

	ImportConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "race_admin_import_conflicts_total",
			Help: "Submitted accounts that already existed, by kind",
		},
		[]string{"kind"},
	)
)
