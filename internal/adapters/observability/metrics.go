package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "external_requests_total", Help: "Outbound document fetches."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotels", Name: "external_request_duration_seconds",
			Help:    "Outbound fetch duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels/errors."},
		[]string{"cache", "event"}, // event: hit|miss|set|del|error
	)
	ValidationDiagnostics = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotels", Name: "validation_diagnostics_total", Help: "Diagnostics collected by schema validation."},
		[]string{"severity"},
	)
	HotelsConverted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hotels", Name: "converted_total", Help: "Hotel records rendered to JSON."},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ExternalRequests, ExternalLatency, CacheEvents, ValidationDiagnostics, HotelsConverted)
	return reg
}

// Push delivers the registry to a Prometheus Pushgateway. An empty url disables pushing.
func Push(ctx context.Context, reg *prometheus.Registry, url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(reg).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del|error
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveDiagnostic(severity string) {
	ValidationDiagnostics.WithLabelValues(severity).Inc()
}

func ObserveConverted(n int) {
	HotelsConverted.Add(float64(n))
}
