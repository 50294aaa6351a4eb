package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "devsecquest"

// Collector owns a private registry with validation and HTTP metrics.
type Collector struct {
	registry *prometheus.Registry

	validations        *prometheus.CounterVec
	findings           *prometheus.CounterVec
	validationDuration prometheus.Histogram
	persistenceErrors  prometheus.Counter

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a collector registered under namespace
// (DefaultNamespace when empty).
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Pipeline configurations validated, by result",
			},
			[]string{"result"},
		),
		findings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "findings_total",
				Help:      "Security findings reported, by rule",
			},
			[]string{"rule"},
		),
		validationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Time spent evaluating rules against a submission",
				Buckets:   []float64{.00001, .0001, .001, .01, .1},
			},
		),
		persistenceErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "persistence_errors_total",
				Help:      "Failures recording a completed challenge",
			},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served",
			},
			[]string{"method", "route", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	c.registry.MustRegister(
		c.validations,
		c.findings,
		c.validationDuration,
		c.persistenceErrors,
		c.requests,
		c.requestDuration,
	)
	return c
}

// ObserveValidation records one validation and the rules that fired.
func (c *Collector) ObserveValidation(passed bool, ruleIDs []string, elapsed time.Duration) {
	result := "failed"
	if passed {
		result = "passed"
	}
	c.validations.WithLabelValues(result).Inc()
	for _, id := range ruleIDs {
		c.findings.WithLabelValues(id).Inc()
	}
	c.validationDuration.Observe(elapsed.Seconds())
}

// ObservePersistenceError records a failed completion update.
func (c *Collector) ObservePersistenceError() {
	c.persistenceErrors.Inc()
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
