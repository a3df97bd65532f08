package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the treasury engine's operational metrics.
type Collector struct {
	registry           *prometheus.Registry
	settlementsTotal   *prometheus.CounterVec
	settlementDuration prometheus.Histogram
	reversalsTotal     prometheus.Counter
	queueDepth         prometheus.Gauge
	accountBalance     *prometheus.GaugeVec
}

// NewCollector builds a Collector with its own registry so tests can create
// independent instances without duplicate-registration panics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		settlementsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "treasury_settlements_total",
			Help: "Settlement attempts by outcome",
		}, []string{"outcome"}),
		settlementDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "treasury_settlement_duration_seconds",
			Help:    "Time taken to settle a payable",
			Buckets: prometheus.DefBuckets,
		}),
		reversalsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "treasury_reversals_total",
			Help: "Total number of settlement reversals",
		}),
		queueDepth: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "treasury_payment_queue_depth",
			Help: "Number of approved payables in the unified payment queue at last read",
		}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "treasury_account_balance",
			Help: "Current account balance",
		}, []string{"account_id", "currency"}),
	}
}

// RecordSettlement counts one settlement attempt and its duration.
func (m *Collector) RecordSettlement(duration time.Duration, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.settlementsTotal.WithLabelValues(outcome).Inc()
	m.settlementDuration.Observe(duration.Seconds())
}

// RecordReversal counts one settlement reversal.
func (m *Collector) RecordReversal() {
	m.reversalsTotal.Inc()
}

// SetQueueDepth records the size of the payment queue at read time.
func (m *Collector) SetQueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

// SetAccountBalance records an account's balance after a settlement.
func (m *Collector) SetAccountBalance(accountID, currency string, balance float64) {
	m.accountBalance.WithLabelValues(accountID, currency).Set(balance)
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
