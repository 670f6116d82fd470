package waterfill

import "github.com/lavanyaj/waterfilling/topology"

// Reference computes the same weighted max-min rates as Allocate with a
// deliberately naive, independently written algorithm: every round it
// recomputes each link's load and fair share from scratch with direct
// summation over every flow and every link (no incremental bookkeeping),
// then saturates the single most-constrained link. It exists purely for
// P3's cross-validation in tests — Allocate's output must agree with
// Reference's within numerical tolerance — grounded on the plain
// residual-rescan style of flow.FordFulkerson/DFSFindPath, which also
// recomputes from scratch each augmentation rather than maintaining
// incremental state.
func Reference(
	flowToPath map[int][]topology.Link,
	flowToWeight map[int]int,
	topo *topology.Topology,
) (map[int]float64, error) {
	fids := make([]int, 0, len(flowToPath))
	for fid := range flowToPath {
		fids = append(fids, fid)
	}

	saturated := make(map[int]bool, len(fids))
	pseudoRate := make(map[int]float64, len(fids))

	onLink := func(fid int, l topology.Link) bool {
		for _, ll := range flowToPath[fid] {
			if ll == l {
				return true
			}
		}

		return false
	}

	for len(saturated) < len(fids) {
		links := make(map[topology.Link]bool)
		for _, fid := range fids {
			for _, l := range flowToPath[fid] {
				links[l] = true
			}
		}

		haveBest := false
		var bestLink topology.Link
		bestShare := 0.0

		for l := range links {
			capVal, ok := topo.Capacity(l)
			if !ok {
				return nil, &LinkError{Link: l, Err: ErrUnknownLink}
			}

			used := 0.0
			unsatWeight := 0
			for _, fid := range fids {
				if !onLink(fid, l) {
					continue
				}
				if saturated[fid] {
					used += float64(flowToWeight[fid]) * pseudoRate[fid]
				} else {
					unsatWeight += flowToWeight[fid]
				}
			}
			if unsatWeight == 0 {
				continue
			}

			share := (capVal - used) / float64(unsatWeight)
			if !haveBest || share < bestShare {
				haveBest = true
				bestShare = share
				bestLink = l
			}
		}

		if !haveBest {
			return nil, ErrNoFairShare
		}
		if bestShare < 0 {
			bestShare = 0
		}

		for _, fid := range fids {
			if !saturated[fid] {
				pseudoRate[fid] = bestShare
			}
		}
		for _, fid := range fids {
			if !saturated[fid] && onLink(fid, bestLink) {
				saturated[fid] = true
			}
		}
	}

	rates := make(map[int]float64, len(fids))
	for _, fid := range fids {
		rates[fid] = float64(flowToWeight[fid]) * pseudoRate[fid]
	}

	return rates, nil
}
