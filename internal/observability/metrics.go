package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_http_requests_total",
			Help: "Total number of HTTP requests processed by the match service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "match_ws_active_connections",
			Help: "Number of active websocket connections.",
		},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_ws_events_total",
			Help: "Total number of websocket events.",
		},
		[]string{"event"},
	)
	sweepRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_sweep_runs_total",
			Help: "Total number of scheduler sweep runs.",
		},
		[]string{"job", "outcome"},
	)
	sweepItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_sweep_items_total",
			Help: "Total number of items processed by scheduler sweeps.",
		},
		[]string{"job"},
	)
	notificationPublishesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_notification_publishes_total",
			Help: "Total number of notification publish attempts.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		wsActiveConnections,
		wsEventsTotal,
		sweepRunsTotal,
		sweepItemsTotal,
		notificationPublishesTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncWSActive() {
	wsActiveConnections.Inc()
}

func DecWSActive() {
	wsActiveConnections.Dec()
}

func IncWSEvent(event string) {
	wsEventsTotal.WithLabelValues(event).Inc()
}

func IncSweepRun(job, outcome string) {
	sweepRunsTotal.WithLabelValues(job, outcome).Inc()
}

func AddSweepItems(job string, count int) {
	sweepItemsTotal.WithLabelValues(job).Add(float64(count))
}

func IncNotificationPublish(outcome string) {
	notificationPublishesTotal.WithLabelValues(outcome).Inc()
}
