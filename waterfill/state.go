package waterfill

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/lavanyaj/waterfilling/topology"
)

// state is WeightedWaterfillingState from the original: bookkeeping carried
// across rounds, passed by mutable reference to round(). unsatLinks is kept
// sorted by (U, V) so that argmin ties resolve deterministically — matching
// the original's std::set<link_t> iteration order — even though spec.md
// notes the resulting rates are themselves tie-independent.
type state struct {
	unsatLinks         []topology.Link
	unsatFlows         map[int]bool
	numUnsatPerLink    map[topology.Link]int
	totalFlowPerLink   map[topology.Link]float64
	activeFlowsPerLink map[topology.Link][]int
	ratePerFlow        map[int]float64
	flowWeight         map[int]int
	rateIncrements     []float64
	round              int
}

func linkLess(a, b topology.Link) bool {
	if a.U != b.U {
		return a.U < b.U
	}

	return a.V < b.V
}

// newState builds the initial bookkeeping for one allocator invocation.
// Flows are processed in ascending fid order so that ties in the round
// algorithm resolve the same way on every run (supports P5).
func newState(
	flowToPath map[int][]topology.Link,
	flowToWeight map[int]int,
	topo *topology.Topology,
) (*state, error) {
	fids := make([]int, 0, len(flowToPath))
	for fid := range flowToPath {
		fids = append(fids, fid)
	}
	sort.Ints(fids)

	st := &state{
		unsatFlows:         make(map[int]bool, len(fids)),
		numUnsatPerLink:    make(map[topology.Link]int),
		totalFlowPerLink:   make(map[topology.Link]float64),
		activeFlowsPerLink: make(map[topology.Link][]int),
		ratePerFlow:        make(map[int]float64, len(fids)),
		flowWeight:         flowToWeight,
	}

	linkSeen := make(map[topology.Link]bool)
	for _, fid := range fids {
		st.unsatFlows[fid] = true
		st.ratePerFlow[fid] = 0
		weight := flowToWeight[fid]
		for _, l := range flowToPath[fid] {
			if _, ok := topo.Capacity(l); !ok {
				return nil, &LinkError{Link: l, Err: ErrUnknownLink}
			}
			if !linkSeen[l] {
				linkSeen[l] = true
				st.numUnsatPerLink[l] = 0
				st.totalFlowPerLink[l] = 0
			}
			st.numUnsatPerLink[l] += weight
			st.activeFlowsPerLink[l] = append(st.activeFlowsPerLink[l], fid)
		}
	}

	st.unsatLinks = make([]topology.Link, 0, len(linkSeen))
	for l := range linkSeen {
		st.unsatLinks = append(st.unsatLinks, l)
	}
	sort.Slice(st.unsatLinks, func(i, j int) bool { return linkLess(st.unsatLinks[i], st.unsatLinks[j]) })

	return st, nil
}

// round runs one iteration of the waterfilling algorithm (spec.md §4.3,
// steps 1–7): find the unsaturated link with the minimum fair share, raise
// every unsaturated flow's rate to match, and saturate that link.
func (st *state) round(topo *topology.Topology, opts Options, log *zap.Logger) error {
	type candidate struct {
		link  topology.Link
		share float64
	}

	candidates := make([]candidate, 0, len(st.unsatLinks))
	for _, l := range st.unsatLinks {
		numUnsat := st.numUnsatPerLink[l]
		if numUnsat <= 0 {
			continue
		}
		capVal, ok := topo.Capacity(l)
		if !ok {
			return &LinkError{Link: l, Err: ErrUnknownLink}
		}
		total, ok := st.totalFlowPerLink[l]
		if !ok {
			return &LinkError{Link: l, Err: ErrMissingBookkeeping}
		}
		candidates = append(candidates, candidate{link: l, share: (capVal - total) / float64(numUnsat)})
	}
	if len(candidates) == 0 {
		return ErrNoFairShare
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.share < best.share {
			best = c
		}
	}

	increment := math.Max(best.share, 0)
	st.rateIncrements = append(st.rateIncrements, increment)
	rateOfUnsatFlow := kahanSum(st.rateIncrements)
	for fid := range st.unsatFlows {
		st.ratePerFlow[fid] = rateOfUnsatFlow
	}

	if opts.Verbose {
		log.Debug("waterfill: round saturates link",
			zap.Int("round", st.round),
			zap.String("link", best.link.String()),
			zap.Float64("fair_share", best.share),
			zap.Float64("rate", rateOfUnsatFlow),
		)
	}

	flowsOnBest, ok := st.activeFlowsPerLink[best.link]
	if !ok {
		return &LinkError{Link: best.link, Err: ErrMissingBookkeeping}
	}
	expectedUnsat := st.numUnsatPerLink[best.link]
	removedWeight := 0
	for _, fid := range flowsOnBest {
		if st.unsatFlows[fid] {
			removedWeight += st.flowWeight[fid]
			delete(st.unsatFlows, fid)
		}
	}
	if removedWeight != expectedUnsat {
		return &LinkError{
			Link: best.link,
			Err:  fmt.Errorf("%w: removed weight %d, expected %d", ErrMissingBookkeeping, removedWeight, expectedUnsat),
		}
	}

	idx := -1
	for i, l := range st.unsatLinks {
		if l == best.link {
			idx = i

			break
		}
	}
	if idx < 0 {
		return &LinkError{Link: best.link, Err: ErrMissingBookkeeping}
	}
	st.unsatLinks = append(st.unsatLinks[:idx], st.unsatLinks[idx+1:]...)

	for _, l := range st.unsatLinks {
		flows, ok := st.activeFlowsPerLink[l]
		if !ok {
			return &LinkError{Link: l, Err: ErrMissingBookkeeping}
		}
		contributions := make([]float64, 0, len(flows))
		for _, fid := range flows {
			contributions = append(contributions, float64(st.flowWeight[fid])*st.ratePerFlow[fid])
		}
		st.totalFlowPerLink[l] = kahanSum(contributions)
	}

	for l := range st.numUnsatPerLink {
		delete(st.numUnsatPerLink, l)
	}
	for _, l := range st.unsatLinks {
		n := 0
		for _, fid := range st.activeFlowsPerLink[l] {
			if st.unsatFlows[fid] {
				n += st.flowWeight[fid]
			}
		}
		st.numUnsatPerLink[l] = n
	}

	st.round++

	return nil
}
