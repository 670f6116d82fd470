package topology

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/lavanyaj/waterfilling/core"
)

// capacityScale converts a Gb/s capacity into the integer units core.Edge.Weight
// requires. It is intentionally lossy (kilobit/s granularity) — the scaled
// graph built by Describe is a diagnostic view only, never used to compute
// rates or check capacity invariants.
const capacityScale = 1e6

// Describe builds a one-shot diagnostic view of t as a directed, weighted
// *core.Graph and logs its out-degree distribution via core's AddEdge/
// Vertices/Degree API. It is deliberately kept off the allocator's critical
// path: core's Edge.Weight is int64, and link capacities are arbitrary
// positive reals, so the scaling here would corrupt I1 (capacity) if ever
// fed back into the allocator. This is the original_source/ "set up N
// links" startup summary (SPEC_FULL §4), called once by cmd/waterfill-sim
// right after topology.Load.
func Describe(t *Topology, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	if t.Len() == 0 {
		log.Info("topology: empty, nothing to describe")

		return
	}

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for l, c := range t.capacities {
		u, v := nodeID(l.U), nodeID(l.V)
		scaled := int64(math.Round(c * capacityScale))
		if _, err := g.AddEdge(u, v, scaled); err != nil {
			log.Warn("topology: describe could not add edge", zap.String("link", l.String()), zap.Error(err))
			continue
		}
	}

	vertices := g.Vertices()
	degrees := make([]int, 0, len(vertices))
	sum := 0
	for _, v := range vertices {
		_, out, _, err := g.Degree(v)
		if err != nil {
			log.Warn("topology: describe could not read degree", zap.String("vertex", v), zap.Error(err))
			continue
		}
		degrees = append(degrees, out)
		sum += out
	}
	if len(degrees) == 0 {
		log.Info("topology: set up links, no vertices to summarize",
			zap.Int("links", t.Len()))

		return
	}
	sort.Ints(degrees)
	mean := float64(sum) / float64(len(degrees))

	log.Info("topology: set up links",
		zap.Int("links", t.Len()),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("min_out_degree", degrees[0]),
		zap.Int("max_out_degree", degrees[len(degrees)-1]),
		zap.Float64("mean_out_degree", mean),
	)
}

func nodeID(n int) string {
	return fmt.Sprintf("%d", n)
}
