package waterfill_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lavanyaj/waterfilling/topology"
	"github.com/lavanyaj/waterfilling/waterfill"
)

type WaterfillSuite struct {
	suite.Suite
}

func TestWaterfillSuite(t *testing.T) {
	suite.Run(t, new(WaterfillSuite))
}

func approxEqual(t *testing.T, got, want map[int]float64) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("rates mismatch (-want +got):\n%s", diff)
	}
}

// S1 — single bottleneck, equal weights.
func (s *WaterfillSuite) TestSingleBottleneckEqualWeights() {
	topo := topology.New(map[topology.Link]float64{{U: 0, V: 1}: 10})
	paths := map[int][]topology.Link{
		1: {{U: 0, V: 1}},
		2: {{U: 0, V: 1}},
		3: {{U: 0, V: 1}},
	}
	weights := map[int]int{1: 1, 2: 1, 3: 1}

	rates, err := waterfill.Allocate(paths, weights, topo, waterfill.DefaultOptions(), nil)
	require.NoError(s.T(), err)
	approxEqual(s.T(), rates, map[int]float64{1: 10.0 / 3, 2: 10.0 / 3, 3: 10.0 / 3})
}

// S2 — two bottlenecks, cascade.
func (s *WaterfillSuite) TestTwoBottlenecksCascade() {
	topo := topology.New(map[topology.Link]float64{
		{U: 0, V: 1}: 10,
		{U: 1, V: 2}: 4,
	})
	paths := map[int][]topology.Link{
		1: {{U: 0, V: 1}, {U: 1, V: 2}},
		2: {{U: 0, V: 1}},
	}
	weights := map[int]int{1: 1, 2: 1}

	rates, err := waterfill.Allocate(paths, weights, topo, waterfill.DefaultOptions(), nil)
	require.NoError(s.T(), err)
	approxEqual(s.T(), rates, map[int]float64{1: 4, 2: 6})
}

// S3 — weighted share.
func (s *WaterfillSuite) TestWeightedShare() {
	topo := topology.New(map[topology.Link]float64{{U: 0, V: 1}: 10})
	paths := map[int][]topology.Link{
		1: {{U: 0, V: 1}},
		2: {{U: 0, V: 1}},
		3: {{U: 0, V: 1}},
	}
	weights := map[int]int{1: 2, 2: 1, 3: 1}

	rates, err := waterfill.Allocate(paths, weights, topo, waterfill.DefaultOptions(), nil)
	require.NoError(s.T(), err)
	approxEqual(s.T(), rates, map[int]float64{1: 5, 2: 2.5, 3: 2.5})
}

// S4 — priority threshold (weights are resolved by the scheduler, not the
// allocator; this exercises the allocator with the resulting weights).
func (s *WaterfillSuite) TestPriorityWeightedShare() {
	topo := topology.New(map[topology.Link]float64{{U: 0, V: 1}: 10})
	paths := map[int][]topology.Link{
		1: {{U: 0, V: 1}},
		2: {{U: 0, V: 1}},
	}
	weights := map[int]int{1: 10, 2: 1}

	rates, err := waterfill.Allocate(paths, weights, topo, waterfill.DefaultOptions(), nil)
	require.NoError(s.T(), err)
	approxEqual(s.T(), rates, map[int]float64{1: 100.0 / 11, 2: 10.0 / 11})
}

// P1/P2 — capacity and positivity hold on a denser, multi-link topology.
func (s *WaterfillSuite) TestCapacityAndPositivity() {
	topo := topology.New(map[topology.Link]float64{
		{U: 0, V: 1}: 10,
		{U: 1, V: 2}: 6,
		{U: 2, V: 3}: 3,
	})
	paths := map[int][]topology.Link{
		1: {{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}},
		2: {{U: 0, V: 1}, {U: 1, V: 2}},
		3: {{U: 0, V: 1}},
		4: {{U: 1, V: 2}},
	}
	weights := map[int]int{1: 1, 2: 2, 3: 1, 4: 1}

	rates, err := waterfill.Allocate(paths, weights, topo, waterfill.DefaultOptions(), nil)
	require.NoError(s.T(), err)

	usage := map[topology.Link]float64{}
	for fid, path := range paths {
		for _, l := range path {
			require.Greater(s.T(), rates[fid], 0.0)
			usage[l] += rates[fid] // already weight-multiplied by Allocate
		}
	}
	for l, used := range usage {
		capVal, _ := topo.Capacity(l)
		require.LessOrEqual(s.T(), used, capVal+1e-6*capVal)
	}
}

// P3 — allocator output matches the independent reference implementation.
func (s *WaterfillSuite) TestMatchesReference() {
	topo := topology.New(map[topology.Link]float64{
		{U: 0, V: 1}: 10,
		{U: 1, V: 2}: 6,
		{U: 2, V: 3}: 3,
		{U: 0, V: 3}: 2,
	})
	paths := map[int][]topology.Link{
		1: {{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}},
		2: {{U: 0, V: 1}, {U: 1, V: 2}},
		3: {{U: 0, V: 1}},
		4: {{U: 1, V: 2}},
		5: {{U: 0, V: 3}},
	}
	weights := map[int]int{1: 3, 2: 2, 3: 1, 4: 1, 5: 4}

	got, err := waterfill.Allocate(paths, weights, topo, waterfill.DefaultOptions(), nil)
	require.NoError(s.T(), err)
	want, err := waterfill.Reference(paths, weights, topo)
	require.NoError(s.T(), err)
	approxEqual(s.T(), got, want)
}

func (s *WaterfillSuite) TestUnknownLinkIsFatal() {
	topo := topology.New(map[topology.Link]float64{{U: 0, V: 1}: 10})
	paths := map[int][]topology.Link{1: {{U: 5, V: 6}}}
	weights := map[int]int{1: 1}

	_, err := waterfill.Allocate(paths, weights, topo, waterfill.DefaultOptions(), nil)
	require.Error(s.T(), err)
	require.True(s.T(), errors.Is(err, waterfill.ErrUnknownLink))
}
