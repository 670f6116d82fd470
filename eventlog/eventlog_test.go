package eventlog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/lavanyaj/waterfilling/eventlog"
)

type EventLogSuite struct {
	suite.Suite
}

func TestEventLogSuite(t *testing.T) {
	suite.Run(t, new(EventLogSuite))
}

func (s *EventLogSuite) TestRateChangeOrdersByFid() {
	var buf bytes.Buffer
	w := eventlog.New(&buf, zaptest.NewLogger(s.T()))

	require.NoError(s.T(), w.RateChange(2.4, map[int]float64{3: 1, 1: 2, 2: 3}))
	require.NoError(s.T(), w.Flush())

	require.Equal(s.T(), "RATE_CHANGE 1 2.4 2\nRATE_CHANGE 2 2.4 3\nRATE_CHANGE 3 2.4 1\n", buf.String())
}

func (s *EventLogSuite) TestDoneThenTerminated() {
	var buf bytes.Buffer
	w := eventlog.New(&buf, zaptest.NewLogger(s.T()))

	require.NoError(s.T(), w.Done([]int{1, 2}))
	require.NoError(s.T(), w.Terminated(1, 2.4))
	require.NoError(s.T(), w.Terminated(2, 2.4))
	require.NoError(s.T(), w.Flush())

	require.Equal(s.T(), "DONE 2 1 2\nRATE_CHANGE 1 2.4 0\nRATE_CHANGE 2 2.4 0\n", buf.String())
}

func (s *EventLogSuite) TestDoneWithNoFlows() {
	var buf bytes.Buffer
	w := eventlog.New(&buf, nil)

	require.NoError(s.T(), w.Done(nil))
	require.NoError(s.T(), w.Flush())
	require.Equal(s.T(), "DONE 0\n", buf.String())
}
