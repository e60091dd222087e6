package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Mutations             *prometheus.CounterVec
	StatementTransactions prometheus.Histogram
	StatementDuration     prometheus.Histogram
	MalformedAmounts      prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting and idempotency
	RateLimitHits     prometheus.Counter
	IdempotentReplays prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearledger_mutations_total",
				Help: "Total committed mutations by entity and operation",
			},
			[]string{"entity", "operation"},
		),
		StatementTransactions: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "clearledger_statement_transactions",
			Help:    "Number of merged transactions per account statement",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
		}),
		StatementDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "clearledger_statement_duration_seconds",
			Help:    "Duration of account statement builds",
			Buckets: prometheus.DefBuckets,
		}),
		MalformedAmounts: factory.NewCounter(prometheus.CounterOpts{
			Name: "clearledger_malformed_amounts_total",
			Help: "Stored amounts that were NULL or NaN when read",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clearledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "clearledger_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "clearledger_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		}),
		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "clearledger_idempotent_replays_total",
			Help: "Responses replayed for a repeated Idempotency-Key",
		}),
	}
}

// RecordMutation counts a committed create, update, delete, restore or purge.
func (m *Metrics) RecordMutation(entity, operation string) {
	m.Mutations.WithLabelValues(entity, operation).Inc()
}

// ObserveStatement records the size and build time of an account statement.
func (m *Metrics) ObserveStatement(transactions int, d time.Duration) {
	m.StatementTransactions.Observe(float64(transactions))
	m.StatementDuration.Observe(d.Seconds())
}

// RecordMalformedAmounts counts stored amounts that could not be read.
func (m *Metrics) RecordMalformedAmounts(n int) {
	m.MalformedAmounts.Add(float64(n))
}

// HTTPStarted marks a request as in flight.
func (m *Metrics) HTTPStarted() {
	m.HTTPInFlight.Inc()
}

// ObserveHTTP records a finished request. path should be a route pattern,
// not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	m.HTTPInFlight.Dec()
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordRateLimited counts a rejected request.
func (m *Metrics) RecordRateLimited() {
	m.RateLimitHits.Inc()
}

// RecordReplay counts a replayed idempotent response.
func (m *Metrics) RecordReplay() {
	m.IdempotentReplays.Inc()
}
