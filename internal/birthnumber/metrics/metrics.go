package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for birth number parsing.
type Metrics struct {
	// Parse outcomes by outcome (accepted/rejected) and rejection reason
	ParseOutcome *prometheus.CounterVec

	ParseLatency prometheus.Histogram

	// Number of inputs per batch request
	BatchSize prometheus.Histogram
}

// New creates the birth number metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ParseOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rcgate_birth_number_parse_total",
			Help: "Total birth number parse attempts by outcome and reason",
		}, []string{"outcome", "reason"}),

		ParseLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rcgate_birth_number_parse_duration_seconds",
			Help:    "Duration of a single birth number parse",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rcgate_birth_number_batch_size",
			Help:    "Number of inputs per batch validation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// IncrementOutcome records a parse outcome. reason is "valid" for accepted
// inputs.
func (m *Metrics) IncrementOutcome(accepted bool, reason string) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	m.ParseOutcome.WithLabelValues(outcome, reason).Inc()
}

// ObserveParseLatency records the duration of one parse.
func (m *Metrics) ObserveParseLatency(d time.Duration) {
	if m != nil {
		m.ParseLatency.Observe(d.Seconds())
	}
}

// ObserveBatchSize records how many inputs a batch carried.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
