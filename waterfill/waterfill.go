// Package waterfill implements C3 of the simulator: the weighted max-min
// waterfilling allocator. Allocate is a pure function of its inputs — it
// mutates no shared state and is safe to call repeatedly with different
// flow sets against the same *topology.Topology.
//
// A flow of weight w is treated as w identical pseudo-flows sharing its
// path (spec.md §4.3). Allocate computes the common pseudo-flow rate per
// flow and reports it multiplied by the flow's weight, so the caller reads
// rates directly in Gb/s without re-deriving the weighting.
package waterfill

import (
	"go.uber.org/zap"

	"github.com/lavanyaj/waterfilling/topology"
)

// Allocate computes a weighted max-min fair rate per flow such that the
// returned (already weight-multiplied) rates of the flows crossing any link
// never sum above its capacity (invariant I1), every active flow's rate is
// positive (I2), and no flow's
// rate can rise without lowering another's (I5). flowToPath and
// flowToWeight must share the same key set (a flow id present in one but
// not the other is a programmer error, not validated here); every link
// referenced by any path must be present in topo, or Allocate returns a
// *LinkError wrapping ErrUnknownLink.
//
// Allocate runs in at most len(flowToPath) rounds (P7): each round strictly
// shrinks the unsaturated-flow set, since the link achieving the minimum
// fair share always has at least one unsaturated flow.
func Allocate(
	flowToPath map[int][]topology.Link,
	flowToWeight map[int]int,
	topo *topology.Topology,
	opts Options,
	log *zap.Logger,
) (map[int]float64, error) {
	if log == nil {
		log = zap.NewNop()
	}

	st, err := newState(flowToPath, flowToWeight, topo)
	if err != nil {
		return nil, err
	}

	for len(st.unsatFlows) > 0 {
		if err := st.round(topo, opts, log); err != nil {
			return nil, err
		}
	}

	rates := make(map[int]float64, len(flowToWeight))
	for fid, pseudoRate := range st.ratePerFlow {
		rates[fid] = float64(flowToWeight[fid]) * pseudoRate
	}

	return rates, nil
}
