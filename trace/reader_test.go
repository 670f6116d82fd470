package trace_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lavanyaj/waterfilling/topology"
	"github.com/lavanyaj/waterfilling/trace"
)

type ReaderSuite struct {
	suite.Suite
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderSuite))
}

func (s *ReaderSuite) TestLookaheadAdvances() {
	input := strings.Join([]string{
		"1 1000000000 0 0 1",
		"2 1000000000 0 0 1",
		"1 -1 1",
	}, "\n")

	r, err := trace.NewReader(strings.NewReader(input))
	require.NoError(s.T(), err)

	require.NotNil(s.T(), r.Current())
	require.Equal(s.T(), 1, r.Current().Fid)
	require.NotNil(s.T(), r.Lookahead())
	require.Equal(s.T(), 2, r.Lookahead().Fid)
	require.True(s.T(), r.Current().IsArrival())
	require.Equal(s.T(), []topology.Link{{U: 0, V: 1}}, r.Current().Path)

	require.NoError(s.T(), r.Advance())
	require.Equal(s.T(), 2, r.Current().Fid)
	require.NotNil(s.T(), r.Lookahead())
	require.Equal(s.T(), 1, r.Lookahead().Fid)
	require.False(s.T(), r.Lookahead().IsArrival())

	require.NoError(s.T(), r.Advance())
	require.Equal(s.T(), 1, r.Current().Fid)
	require.Nil(s.T(), r.Lookahead())

	require.NoError(s.T(), r.Advance())
	require.Nil(s.T(), r.Current())
}

func (s *ReaderSuite) TestMalformedLineIsFatal() {
	_, err := trace.NewReader(strings.NewReader("not-a-flow-id 1000 0 0 1"))
	require.Error(s.T(), err)
}

func (s *ReaderSuite) TestArrivalNeedsAPath() {
	_, err := trace.NewReader(strings.NewReader("1 1000 0"))
	require.Error(s.T(), err)
}

func (s *ReaderSuite) TestMultiHopPath() {
	r, err := trace.NewReader(strings.NewReader("1 1000 0 0 1 2 3"))
	require.NoError(s.T(), err)
	require.Equal(s.T(), []topology.Link{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}}, r.Current().Path)
}
