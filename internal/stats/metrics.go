package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RefreshSuccess = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stats_refresh_success_total",
			Help: "Background stats refreshes that reached the cache",
		},
	)
	RefreshFailure = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stats_refresh_failure_total",
			Help: "Background stats refreshes that exhausted all retries",
		},
	)
	RefreshDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stats_refresh_dropped_total",
			Help: "Refresh jobs dropped because the queue was full",
		},
	)
)

func init() {
	prometheus.MustRegister(RefreshSuccess)
	prometheus.MustRegister(RefreshFailure)
	prometheus.MustRegister(RefreshDropped)
}
