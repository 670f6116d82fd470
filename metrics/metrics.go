// Package metrics exposes the simulator's in-process counters and gauges as
// Prometheus collectors, grounded on the registration style of
// internal/ratelimiter/telemetry/churn in the retrieval pack. Unlike that
// package's global MustRegister, Metrics is constructed per-run and
// registered against a caller-supplied registry, since a single process may
// run more than one simulation (tests do exactly that).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors the scheduler updates during a run.
type Metrics struct {
	AllocatorInvocationsTotal prometheus.Counter
	EventsProcessedTotal      prometheus.Counter
	FlowsCompletedTotal       prometheus.Counter
	ActiveFlows               prometheus.Gauge
}

// New constructs a fresh Metrics and registers its collectors against reg.
// A nil registry is replaced with a private prometheus.NewRegistry(), so
// callers that don't care about scraping can still call New safely.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		AllocatorInvocationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waterfill_allocator_invocations_total",
			Help: "Total times the waterfilling allocator was re-invoked on a membership change.",
		}),
		EventsProcessedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waterfill_events_processed_total",
			Help: "Total scheduler loop iterations (arrivals, terminations, natural completions).",
		}),
		FlowsCompletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waterfill_flows_completed_total",
			Help: "Total flows removed from the flow table, by any cause.",
		}),
		ActiveFlows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "waterfill_active_flows",
			Help: "Number of flows currently in the flow table.",
		}),
	}

	reg.MustRegister(m.AllocatorInvocationsTotal, m.EventsProcessedTotal, m.FlowsCompletedTotal, m.ActiveFlows)

	return m
}
