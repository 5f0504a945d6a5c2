// Package metrics defines the Prometheus instrumentation for action
// dispatch. The registry core stays unmeasured; counting happens at the
// HTTP boundary where policy lives.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors together with the registry that exposes
// them, so each App instance gets an isolated metric namespace in tests.
type Metrics struct {
	Registry *prometheus.Registry

	// ActionInvocations counts bound-action invocations by plugin, action,
	// and outcome ("ok" or "error").
	ActionInvocations *prometheus.CounterVec

	// ActionDuration observes wall time of bound-action invocations.
	ActionDuration *prometheus.HistogramVec
}

// New creates an isolated metrics set.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ActionInvocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "connectgrid",
			Name:      "action_invocations_total",
			Help:      "Bound action invocations by plugin, action, and outcome.",
		}, []string{"plugin", "action", "outcome"}),
		ActionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "connectgrid",
			Name:      "action_duration_seconds",
			Help:      "Duration of bound action invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"plugin", "action"}),
	}
}
