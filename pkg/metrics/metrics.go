// Package metrics holds the Prometheus collectors shared by the HTTP layer and
// the background pool monitor.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 1, 3},
		},
		[]string{"method", "route"},
	)

	InFlightRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	TaskEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_events_published_total",
			Help: "Task events handed to the event transport",
		},
		[]string{"type", "result"},
	)

	dbOpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_open_connections",
		Help: "Established connections, in use and idle",
	})
	dbInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_in_use_connections",
		Help: "Connections currently borrowed by requests",
	})
	dbIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_idle_connections",
		Help: "Idle connections",
	})
	dbWaitCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_wait_count",
		Help: "Total number of connections waited for",
	})
	dbMaxIdleTimeClosed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_max_idle_time_closed",
		Help: "Total connections closed because of the idle timeout",
	})
)

// RecordPoolStats copies a pool snapshot into the gauges.
func RecordPoolStats(s sql.DBStats) {
	dbOpenConnections.Set(float64(s.OpenConnections))
	dbInUse.Set(float64(s.InUse))
	dbIdle.Set(float64(s.Idle))
	dbWaitCount.Set(float64(s.WaitCount))
	dbMaxIdleTimeClosed.Set(float64(s.MaxIdleTimeClosed))
}
