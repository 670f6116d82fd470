package trace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lavanyaj/waterfilling/topology"
)

// parseLine parses one trace-file line into an Event. Two shapes are
// accepted: "fid num_bytes time" (termination, num_bytes <= 0) and
// "fid num_bytes time n0 n1 … nk" with k >= 1 (arrival, num_bytes > 0).
// Any other shape is a fatal parse error per spec.md §7.
func parseLine(line string) (*Event, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("trace: expected at least 3 fields, got %d: %q", len(fields), line)
	}

	fid, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("trace: bad fid %q: %w", fields[0], err)
	}
	numBytes, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("trace: bad num_bytes %q: %w", fields[1], err)
	}
	t, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, fmt.Errorf("trace: bad time %q: %w", fields[2], err)
	}

	if numBytes <= 0 {
		if len(fields) != 3 {
			return nil, fmt.Errorf("trace: termination line has trailing fields: %q", line)
		}

		return &Event{Fid: fid, NumBytes: numBytes, Time: t}, nil
	}

	nodeFields := fields[3:]
	if len(nodeFields) < 2 {
		return nil, fmt.Errorf("trace: arrival needs a path of at least one link: %q", line)
	}
	nodes := make([]int, len(nodeFields))
	for i, f := range nodeFields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("trace: bad node id %q: %w", f, err)
		}
		nodes[i] = n
	}
	path := make([]topology.Link, 0, len(nodes)-1)
	for i := 0; i < len(nodes)-1; i++ {
		path = append(path, topology.Link{U: nodes[i], V: nodes[i+1]})
	}

	return &Event{Fid: fid, NumBytes: numBytes, Time: t, Path: path}, nil
}
