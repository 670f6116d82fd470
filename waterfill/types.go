package waterfill

import (
	"errors"
	"fmt"

	"github.com/lavanyaj/waterfilling/topology"
)

// Sentinel errors for the allocator. Callers should use errors.Is to
// branch on semantics; LinkError wraps these with the offending link.
var (
	// ErrUnknownLink indicates a flow's path references a link absent
	// from the topology.
	ErrUnknownLink = errors.New("waterfill: link not found in topology")

	// ErrMissingBookkeeping indicates an unsaturated link lacks the
	// per-round bookkeeping entries the algorithm requires — an internal
	// inconsistency, never a user input error.
	ErrMissingBookkeeping = errors.New("waterfill: unsaturated link missing bookkeeping")

	// ErrNoFairShare indicates no unsaturated link carries an
	// unsaturated flow while unsaturated flows remain — also an internal
	// inconsistency per spec.md §4.3's failure conditions.
	ErrNoFairShare = errors.New("waterfill: no unsaturated link carries an unsaturated flow")
)

// LinkError names the link (and, for bookkeeping mismatches, the detail)
// behind one of the sentinels above.
type LinkError struct {
	Link topology.Link
	Err  error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("waterfill: link %s: %v", e.Link, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// Options configures Allocate.
type Options struct {
	// Verbose, if true, logs each round's bottleneck link and rate
	// increment at debug level.
	Verbose bool
}

// DefaultOptions returns production-safe defaults: Verbose disabled.
func DefaultOptions() Options {
	return Options{}
}
