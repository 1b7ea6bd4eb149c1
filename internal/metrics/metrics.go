// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "school_commands_total",
			Help: "Total number of executed commands by outcome",
		},
		[]string{"command", "outcome"},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "school_command_duration_seconds",
			Help:    "Command duration in seconds, including storage round trips",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	LockWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "school_store_lock_wait_seconds",
			Help:    "Time spent waiting for the store lock",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)
)
