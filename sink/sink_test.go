package sink_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lavanyaj/waterfilling/sink"
)

type SinkSuite struct {
	suite.Suite
}

func TestSinkSuite(t *testing.T) {
	suite.Run(t, new(SinkSuite))
}

func (s *SinkSuite) TestWriteAndClose() {
	path := filepath.Join(s.T().TempDir(), "out.txt")

	sk, err := sink.Open(path)
	require.NoError(s.T(), err)

	require.NoError(s.T(), sk.Write(sink.Record{
		Fid:           1,
		EndTime:       2.4,
		StartTime:     0,
		OriginalBytes: 1e9,
		Src:           0,
		Dst:           1,
	}))
	require.NoError(s.T(), sk.Close())

	data, err := os.ReadFile(path)
	require.NoError(s.T(), err)
	require.Contains(s.T(), string(data), "fid 1 end_time 2.4 start_time 0 fldur 2.4")
	require.Contains(s.T(), string(data), "gid 0-1")
}

func (s *SinkSuite) TestSecondOpenIsLockedOut() {
	path := filepath.Join(s.T().TempDir(), "out.txt")

	sk, err := sink.Open(path)
	require.NoError(s.T(), err)
	defer sk.Close()

	_, err = sink.Open(path)
	require.Error(s.T(), err)
}
