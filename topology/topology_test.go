package topology_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/lavanyaj/waterfilling/topology"
)

type TopologySuite struct {
	suite.Suite
}

func TestTopologySuite(t *testing.T) {
	suite.Run(t, new(TopologySuite))
}

func (s *TopologySuite) TestLoadSkipsMalformedLines() {
	input := strings.Join([]string{
		"0 1 10",
		"garbage line",
		"1 2 4.5",
		"2 3 -1",
		"",
		"3 4 notanumber",
	}, "\n")

	log := zaptest.NewLogger(s.T())
	topo, err := topology.Load(strings.NewReader(input), log)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, topo.Len())

	cap01, ok := topo.Capacity(topology.Link{U: 0, V: 1})
	require.True(s.T(), ok)
	require.Equal(s.T(), 10.0, cap01)

	cap12, ok := topo.Capacity(topology.Link{U: 1, V: 2})
	require.True(s.T(), ok)
	require.Equal(s.T(), 4.5, cap12)

	_, ok = topo.Capacity(topology.Link{U: 2, V: 3})
	require.False(s.T(), ok)
}

func (s *TopologySuite) TestCapacityMissingLink() {
	topo := topology.New(map[topology.Link]float64{{U: 0, V: 1}: 10})
	_, ok := topo.Capacity(topology.Link{U: 5, V: 6})
	require.False(s.T(), ok)
}

func (s *TopologySuite) TestDescribeDoesNotPanicOnEmptyTopology() {
	topo := topology.New(nil)
	log := zaptest.NewLogger(s.T())
	topology.Describe(topo, log)
}

func (s *TopologySuite) TestDescribeLogsDegreeSummary() {
	topo := topology.New(map[topology.Link]float64{
		{U: 0, V: 1}: 10,
		{U: 0, V: 2}: 5,
		{U: 1, V: 2}: 4,
	})
	log := zaptest.NewLogger(s.T())
	topology.Describe(topo, log)
}
