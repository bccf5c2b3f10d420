package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Verifications  *prometheus.CounterVec
	VerifyDuration prometheus.Histogram
}

// NewMetrics registers the verification metrics with reg (the default
// registerer when nil; tests pass their own).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "verifier_verifications_total",
			Help: "Total verification requests by outcome",
		}, []string{"outcome"}),
		VerifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "verifier_verify_duration_seconds",
			Help:    "Duration of the extraction pipeline",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) ObserveVerify(start time.Time) {
	m.VerifyDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementOutcome(outcome string) {
	m.Verifications.WithLabelValues(outcome).Inc()
}
