package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	moderationTotal *prometheus.CounterVec
	pushDeliveries  prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors. subscriberCount,
// when non-nil, feeds a gauge with the number of live SSE listeners.
func NewMetricsService(subscriberCount func() int) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	moderationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suggestions_moderated_total",
		Help: "Moderation decisions by outcome",
	}, []string{"outcome"})

	pushDeliveries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "push_deliveries_queued_total",
		Help: "Web Push deliveries handed to the background queue",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	collectors := []prometheus.Collector{requestDuration, requestTotal, moderationTotal, pushDeliveries, goroutines}
	if subscriberCount != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "sse_subscribers",
			Help: "Connected live-update listeners",
		}, func() float64 {
			return float64(subscriberCount())
		}))
	}
	registry.MustRegister(collectors...)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		moderationTotal: moderationTotal,
		pushDeliveries:  pushDeliveries,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one finished request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestTotal.With(labels).Inc()
}

// CountModeration records one moderation decision outcome.
func (m *MetricsService) CountModeration(outcome string) {
	if m == nil {
		return
	}
	m.moderationTotal.WithLabelValues(outcome).Inc()
}

// CountPushQueued records queued Web Push deliveries.
func (m *MetricsService) CountPushQueued(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pushDeliveries.Add(float64(n))
}
