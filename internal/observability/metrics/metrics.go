package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	AuthSignupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_signups_total",
			Help: "Total number of member signup attempts.",
		},
		[]string{"result"},
	)

	RequestsFiledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_filed_total",
			Help: "Total number of contact and viewing requests filed.",
		},
		[]string{"type"},
	)
)

var registerOnce sync.Once

// MustRegister adds every collector to the default registry. Later calls
// are no-ops.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			AuthLoginsTotal,
			AuthSignupsTotal,
			RequestsFiledTotal,
		)
	})
}
