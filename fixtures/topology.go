package fixtures

import "github.com/lavanyaj/waterfilling/topology"

// Chain returns an n-link linear topology 0→1→2→…→n, grounded on
// builder.Path's node-numbering scheme. n must be at least 1.
func Chain(n int, opts ...Option) *topology.Topology {
	if n < 1 {
		panic("fixtures: Chain(n<1)")
	}

	cfg := newConfig(opts...)
	caps := make(map[topology.Link]float64, n)
	for i := 0; i < n; i++ {
		caps[topology.Link{U: i, V: i + 1}] = cfg.resolveCapacity()
	}

	return topology.New(caps)
}

// Grid returns a rows×cols orthogonal grid of directed links, each cell
// connected to its right and bottom neighbor, mirrored in both directions
// so flows can traverse in either orientation — adapted from
// builder.Grid's row-major numbering but using integer node ids instead of
// "r,c" string vertex labels, since topology.Link is keyed on ints.
func Grid(rows, cols int, opts ...Option) *topology.Topology {
	if rows < 1 || cols < 1 {
		panic("fixtures: Grid(rows<1 || cols<1)")
	}

	cfg := newConfig(opts...)
	id := func(r, c int) int { return r*cols + c }

	caps := make(map[topology.Link]float64)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := id(r, c)
			if c+1 < cols {
				v := id(r, c+1)
				cap0 := cfg.resolveCapacity()
				caps[topology.Link{U: u, V: v}] = cap0
				caps[topology.Link{U: v, V: u}] = cap0
			}
			if r+1 < rows {
				v := id(r+1, c)
				cap0 := cfg.resolveCapacity()
				caps[topology.Link{U: u, V: v}] = cap0
				caps[topology.Link{U: v, V: u}] = cap0
			}
		}
	}

	return topology.New(caps)
}

// Star returns a topology with center node 0 and n leaves 1..n, each leaf
// connected to the center in both directions, adapted from builder.Star.
func Star(n int, opts ...Option) *topology.Topology {
	if n < 1 {
		panic("fixtures: Star(n<1)")
	}

	cfg := newConfig(opts...)
	caps := make(map[topology.Link]float64, 2*n)
	for leaf := 1; leaf <= n; leaf++ {
		caps[topology.Link{U: 0, V: leaf}] = cfg.resolveCapacity()
		caps[topology.Link{U: leaf, V: 0}] = cfg.resolveCapacity()
	}

	return topology.New(caps)
}
