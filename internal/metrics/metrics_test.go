package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestGenerateMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGenerateMetrics(reg)
	m.ObserveOutcome(OutcomeOK)
	m.ObserveOutcome(OutcomeFallback)
	m.ObserveOutcome(OutcomeRejected)
	m.ObserveLatency(0.25)
}

func TestGenerateMetricsNilSafe(t *testing.T) {
	var m *GenerateMetrics
	m.ObserveOutcome(OutcomeOK)
	m.ObserveLatency(0.1)
}
