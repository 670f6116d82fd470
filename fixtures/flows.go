package fixtures

import (
	"fmt"
	"strings"

	"github.com/lavanyaj/waterfilling/topology"
)

// FlowSpec describes one trace-file line's worth of arrival, for use with
// TraceText.
type FlowSpec struct {
	Fid      int
	NumBytes float64
	Time     float64
	Path     []int // node ids; len must be >= 2
}

// TraceText renders specs into the arrival-line format trace.NewReader
// expects, one per line, in the given order. It is the test-fixture analog
// of builder's graph constructors: deterministic, and pure given its input.
func TraceText(specs []FlowSpec) string {
	var b strings.Builder
	for _, s := range specs {
		fmt.Fprintf(&b, "%d %g %g", s.Fid, s.NumBytes, s.Time)
		for _, n := range s.Path {
			fmt.Fprintf(&b, " %d", n)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// TerminationLine renders a single explicit-termination trace line.
func TerminationLine(fid int, t float64) string {
	return fmt.Sprintf("%d 0 %g\n", fid, t)
}

// ChainPath returns the node sequence 0,1,…,n for use as a FlowSpec.Path
// over a Chain(n) topology.
func ChainPath(n int) []int {
	path := make([]int, n+1)
	for i := range path {
		path[i] = i
	}

	return path
}

// LinksOf converts a node-id path into topology.Links, mirroring
// trace.parseLine's own (u0,v0),(v0,v1),... construction for callers that
// need links directly rather than trace text.
func LinksOf(nodes []int) []topology.Link {
	links := make([]topology.Link, 0, len(nodes)-1)
	for i := 0; i < len(nodes)-1; i++ {
		links = append(links, topology.Link{U: nodes[i], V: nodes[i+1]})
	}

	return links
}
