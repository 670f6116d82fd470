package fixtures

import "math/rand"

// Option customizes a generator by mutating a config before topology or
// flow construction begins, adapted from builder.BuilderOption's
// functional-options pattern.
type Option func(*config)

type config struct {
	rng        *rand.Rand
	capacity   float64
	capacityFn func(*rand.Rand) float64
}

func newConfig(opts ...Option) *config {
	cfg := &config{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// resolveCapacity returns capacityFn(rng) when both are set, else the flat
// capacity value.
func (c *config) resolveCapacity() float64 {
	if c.capacityFn != nil && c.rng != nil {
		return c.capacityFn(c.rng)
	}

	return c.capacity
}

// DefaultCapacity is used by every link a generator emits unless
// overridden by WithCapacity or WithCapacityFn.
const DefaultCapacity = 10.0
