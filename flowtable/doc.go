// Package flowtable implements C4: the associative store of active flows
// keyed by fid. It owns no scheduling logic — the scheduler decides when
// flows are born, drained, and removed — but centralizes the drain
// arithmetic and completion-threshold check so both stay numerically
// consistent with the allocator's rate convention.
package flowtable
