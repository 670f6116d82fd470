package flowtable

import "github.com/lavanyaj/waterfilling/topology"

// Flow is the state C4 holds per active flow: the five attributes of the
// data model. The current allocator rate is not part of Flow; the
// scheduler keeps the last computed rates in its own map, apart from the
// table.
type Flow struct {
	Fid            int
	Path           []topology.Link
	OriginalBytes  float64
	RemainingBytes float64
	Weight         int
	StartTime      float64
}
