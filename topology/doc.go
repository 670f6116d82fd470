// Package topology implements C1 of the waterfilling simulator: an
// immutable link→capacity mapping built once from a topology file and
// shared by reference with the allocator and scheduler for the lifetime of
// a run.
package topology
