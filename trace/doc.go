// Package trace implements C2 of the waterfilling simulator: a lazy,
// one-event-lookahead sequence of arrivals and terminations parsed from a
// trace file, per spec.md §4.2 and §6.
package trace
