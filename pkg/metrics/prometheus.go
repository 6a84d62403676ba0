package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	syncTotal   *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	lastBuy     *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		syncTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotevault_sync_total",
				Help: "Total number of sync cycles by cache key and outcome",
			},
			[]string{"key", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotevault_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastBuy: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quotevault_last_buy_price",
				Help: "Last normalized buy price for a currency code",
			},
			[]string{"code"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quotevault_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSync records the outcome of a sync cycle for a cache key.
// Outcomes: fresh, hit, stale, empty.
func (r *Recorder) RecordSync(key, outcome string) {
	r.syncTotal.WithLabelValues(key, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordBuyPrice records the last buy price for a currency code.
func (r *Recorder) RecordBuyPrice(code string, price float64) {
	r.lastBuy.WithLabelValues(code).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
