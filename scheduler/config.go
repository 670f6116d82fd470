package scheduler

import (
	"fmt"
	"math"
)

// defaultMaxIterations is the safety bound on event-loop iterations (spec
// §4.5): a large finite value guarding against pathological traces.
const defaultMaxIterations = 500_000

// Config holds the three numeric CLI parameters that shape scheduling
// decisions (min_bytes_for_priority, priority_weight, max_sim_time), plus
// the loop bound and verbosity, independent of which files back the
// topology and trace.
type Config struct {
	// MinBytesForPriority is the original_bytes threshold below which an
	// arriving flow receives PriorityWeight instead of weight 1.
	MinBytesForPriority float64
	// PriorityWeight is the pseudo-flow count assigned to flows below the
	// threshold. Always a positive integer.
	PriorityWeight int
	// MaxSimTime is the strictly positive simulation-time ceiling.
	MaxSimTime float64
	// MaxIterations bounds the event loop; zero means use the default.
	MaxIterations int
	// Verbose enables per-round allocator diagnostics.
	Verbose bool
}

// NewConfig validates and constructs a Config from the raw CLI values.
// priorityWeight is a real number per spec §6 and is truncated toward zero
// per the design note on the priority-weight cast; the result must be
// strictly positive.
func NewConfig(minBytesForPriority, priorityWeight, maxSimTime float64) (Config, error) {
	if maxSimTime <= 0 {
		return Config{}, fmt.Errorf("%w: max_sim_time must be strictly positive, got %g", ErrInvalidConfig, maxSimTime)
	}

	pw := int(math.Trunc(priorityWeight))
	if pw <= 0 {
		return Config{}, fmt.Errorf("%w: priority_weight must truncate to a positive integer, got %g", ErrInvalidConfig, priorityWeight)
	}

	return Config{
		MinBytesForPriority: minBytesForPriority,
		PriorityWeight:      pw,
		MaxSimTime:          maxSimTime,
		MaxIterations:       defaultMaxIterations,
	}, nil
}

// weightFor returns the weight an arriving flow of the given original byte
// count should receive.
func (c Config) weightFor(originalBytes float64) int {
	if originalBytes < c.MinBytesForPriority {
		return c.PriorityWeight
	}

	return 1
}

func (c Config) maxIterations() int {
	if c.MaxIterations <= 0 {
		return defaultMaxIterations
	}

	return c.MaxIterations
}
