package trace

import "github.com/lavanyaj/waterfilling/topology"

// Event is one parsed trace-file line: an arrival (NumBytes > 0, Path set)
// or a termination (NumBytes <= 0, Path nil).
type Event struct {
	Fid      int
	NumBytes float64
	Time     float64
	Path     []topology.Link
}

// IsArrival reports whether e describes a flow arrival rather than an
// explicit termination.
func (e *Event) IsArrival() bool {
	return e.NumBytes > 0
}
