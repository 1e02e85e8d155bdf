package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, route and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// PlansComposed counts composition runs by outcome (complete, unassignable, invalid, error)
	PlansComposed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plans_composed_total", Help: "Trip composition runs by outcome."},
		[]string{"outcome"},
	)
	// TripsCommitted counts committed trips by vehicle type
	TripsCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trips_committed_total", Help: "Committed trips by vehicle type."},
		[]string{"vehicle_type"},
	)
	// ComposeDuration tracks how long composition takes
	ComposeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "plan_compose_duration_seconds", Help: "Trip composition duration in seconds.", Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30}},
	)
)

// RegisterDefault registers the service collectors once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(PlansComposed)
		Registry.MustRegister(TripsCommitted)
		Registry.MustRegister(ComposeDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
