// Package metrics exposes Prometheus counters for HTTP traffic and the
// account and course flows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels used by the flow counters.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Recorder is what the services and middleware report into.
type Recorder interface {
	RecordRequest(method, route string, status int, latency time.Duration)
	RecordSignup(outcome string)
	RecordLogin(outcome string)
	RecordEnrollment(outcome string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordSignup(string)                              {}
func (Nop) RecordLogin(string)                               {}
func (Nop) RecordEnrollment(string)                          {}

type Collector struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	signups     *prometheus.CounterVec
	logins      *prometheus.CounterVec
	enrollments *prometheus.CounterVec
}

// NewCollector registers the metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courseapi_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "courseapi_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courseapi_signups_total",
			Help: "Signup attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courseapi_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		enrollments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courseapi_enrollments_total",
			Help: "Enrollment attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.requests, c.latency, c.signups, c.logins, c.enrollments)
	return c
}

func (c *Collector) RecordRequest(method, route string, status int, latency time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(latency.Seconds())
}

func (c *Collector) RecordSignup(outcome string)     { c.signups.WithLabelValues(outcome).Inc() }
func (c *Collector) RecordLogin(outcome string)      { c.logins.WithLabelValues(outcome).Inc() }
func (c *Collector) RecordEnrollment(outcome string) { c.enrollments.WithLabelValues(outcome).Inc() }

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
