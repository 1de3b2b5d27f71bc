package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for completed generate requests.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeRejected = "rejected"
)

// GenerateMetrics exposes counters/histograms for the generate path.
type GenerateMetrics struct {
	outcomes *prometheus.CounterVec
	latency  prometheus.Histogram
}

func NewGenerateMetrics(reg prometheus.Registerer) *GenerateMetrics {
	m := &GenerateMetrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "localaihub",
			Subsystem: "generate",
			Name:      "requests_total",
			Help:      "Generate requests by outcome",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "localaihub",
			Subsystem: "generate",
			Name:      "latency_seconds",
			Help:      "Latency of the backend dispatch and resolve step",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.outcomes, m.latency)
	return m
}

func (m *GenerateMetrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}

func (m *GenerateMetrics) ObserveLatency(seconds float64) {
	if m == nil {
		return
	}
	m.latency.Observe(seconds)
}
