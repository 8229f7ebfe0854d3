// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records authentication and HTTP metrics. It satisfies the
// auth service's Metrics interface.
type Collector struct {
	registrations prometheus.Counter
	logins        prometheus.Counter
	loginFailures prometheus.Counter
	refreshes     prometheus.Counter
	tokensRevoked prometheus.Counter
	tokensPurged  prometheus.Counter
	httpStatus    *prometheus.CounterVec
	httpLatency   prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leagueforge_registrations_total",
			Help: "Total number of successful account registrations",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leagueforge_logins_total",
			Help: "Total number of successful logins",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leagueforge_login_failures_total",
			Help: "Total number of failed login attempts",
		}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leagueforge_token_refreshes_total",
			Help: "Total number of successful access token refreshes",
		}),
		tokensRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leagueforge_tokens_revoked_total",
			Help: "Total number of access tokens revoked",
		}),
		tokensPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leagueforge_tokens_purged_total",
			Help: "Total number of token rows deleted by the cleanup job",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leagueforge_http_status_total",
			Help: "Responses by HTTP status code",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leagueforge_http_latency_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.registrations,
		c.logins,
		c.loginFailures,
		c.refreshes,
		c.tokensRevoked,
		c.tokensPurged,
		c.httpStatus,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

func (c *Collector) RecordRefresh() {
	c.refreshes.Inc()
}

func (c *Collector) RecordTokensRevoked(count int64) {
	c.tokensRevoked.Add(float64(count))
}

// RecordTokensPurged counts rows deleted by the periodic token cleanup.
func (c *Collector) RecordTokensPurged(count int64) {
	c.tokensPurged.Add(float64(count))
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordHTTPLatency(duration time.Duration) {
	c.httpLatency.Observe(duration.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
