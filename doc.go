// Package waterfilling is a discrete-event, fluid-model network-flow
// simulator. Given a fixed set of links with capacities and a time-ordered
// trace of flow arrivals and departures on predetermined paths, it computes
// at every event time the instantaneous rate each active flow receives
// under weighted max-min fair bandwidth allocation, advances flow backlogs
// accordingly, and emits completion records.
//
// The module is organized into the same leaf-first components the
// simulator is built from:
//
//	topology/   — immutable link → capacity mapping (C1)
//	trace/      — lazy, lookahead trace event reader (C2)
//	waterfill/  — weighted max-min waterfilling allocator (C3)
//	flowtable/  — active-flow state store (C4)
//	scheduler/  — the event loop tying the above together (C5)
//	sink/       — append-only completion-record writer (C6)
//	eventlog/   — rate-change and completion protocol lines (C7)
//	metrics/    — Prometheus counters and gauges for the above
//	fixtures/   — topology and trace generators shared by tests
//	cmd/waterfill-sim/ — command-line entry point
//
// See cmd/waterfill-sim for the six-argument invocation this module was
// built to serve.
package waterfilling
