package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the
// availability engine.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration      *prometheus.HistogramVec
	requestTotal         *prometheus.CounterVec
	availabilityDuration prometheus.Observer
	slotsGenerated       prometheus.Histogram
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	degradedTimezones    prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
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

	availabilityDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "availability_compute_seconds",
		Help:    "Duration of slot computations",
		Buckets: prometheus.DefBuckets,
	})

	slotsGenerated := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "availability_slots_generated",
		Help:    "Number of candidate slots labeled per query",
		Buckets: []float64{0, 8, 16, 32, 64, 128},
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_cache_hits_total",
		Help: "Total snapshot cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_cache_misses_total",
		Help: "Total snapshot cache misses",
	})

	degradedTimezones := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_timezone_fallbacks_total",
		Help: "Queries answered with the default timezone because the salon zone was unresolvable",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, availabilityDuration, slotsGenerated, cacheHits, cacheMisses, degradedTimezones, goroutines)

	return &MetricsService{
		registry:             registry,
		handler:              promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:      requestDuration,
		requestTotal:         requestTotal,
		availabilityDuration: availabilityDuration,
		slotsGenerated:       slotsGenerated,
		cacheHits:            cacheHits,
		cacheMisses:          cacheMisses,
		degradedTimezones:    degradedTimezones,
	}
}

// Handler exposes the /metrics scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one served HTTP request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveAvailability records one slot computation.
func (m *MetricsService) ObserveAvailability(duration time.Duration, slotCount int, cacheHit, degraded bool) {
	if cacheHit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
		m.availabilityDuration.Observe(duration.Seconds())
		m.slotsGenerated.Observe(float64(slotCount))
	}
	if degraded {
		m.degradedTimezones.Inc()
	}
}
