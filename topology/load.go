package topology

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Load reads a topology file: one link per line, "u v capacity",
// whitespace-separated. u and v are integers, capacity is a positive real
// in Gb/s. Lines that fail to parse — wrong field count, non-integer
// endpoints, non-positive or non-numeric capacity — are logged and
// skipped, per spec.md §7. Load only returns a non-nil error for I/O
// failures on r itself.
func Load(r io.Reader, log *zap.Logger) (*Topology, error) {
	if log == nil {
		log = zap.NewNop()
	}

	caps := make(map[Link]float64)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	skipped := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		link, capVal, ok := parseLinkLine(line)
		if !ok {
			log.Warn("topology: can't parse line to get link and capacity",
				zap.Int("line", lineNum), zap.String("text", line))
			skipped++
			continue
		}
		caps[link] = capVal
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Info("topology: set up links", zap.Int("links", len(caps)), zap.Int("skipped", skipped))

	return New(caps), nil
}

func parseLinkLine(line string) (Link, float64, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Link{}, 0, false
	}
	u, err := strconv.Atoi(fields[0])
	if err != nil {
		return Link{}, 0, false
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return Link{}, 0, false
	}
	capVal, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || capVal <= 0 {
		return Link{}, 0, false
	}

	return Link{U: u, V: v}, capVal, true
}
