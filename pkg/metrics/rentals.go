package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Rental operations.
const (
	OpCheckout = "checkout"
	OpReturn   = "return"
)

// RentalMetrics records outcomes and latency of rental transitions. A nil
// *RentalMetrics is valid and records nothing.
type RentalMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewRentalMetrics registers the rental metrics on the provided registerer.
func NewRentalMetrics(reg prometheus.Registerer) *RentalMetrics {
	if reg == nil {
		return &RentalMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rental_operation_duration_seconds",
		Help:    "Duration of rental checkout and return units of work.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_operations_total",
		Help: "Rental operations by outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, outcomes)
	return &RentalMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

// ObserveDuration records how long the operation took.
func (m *RentalMetrics) ObserveDuration(op string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(op)).Observe(d.Seconds())
}

// IncOutcome counts one finished operation. Outcome is "ok" or an error code.
func (m *RentalMetrics) IncOutcome(op, outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
