package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// SweeperRunTestSuite exercises the background loop against a scratch dir.
type SweeperRunTestSuite struct {
	suite.Suite
	dir string
}

func (s *SweeperRunTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *SweeperRunTestSuite) writeAged(name string, age time.Duration) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte("city\n"), 0o600))
	old := time.Now().Add(-age)
	s.Require().NoError(os.Chtimes(path, old, old))
	return path
}

func (s *SweeperRunTestSuite) TestRunWithoutIntervalSweepsOnce() {
	stale := s.writeAged(tempPrefix+"stale.csv", 2*time.Hour)
	fresh := s.writeAged(tempPrefix+"fresh.csv", time.Minute)

	done := make(chan struct{})
	go func() {
		Sweeper{Dir: s.dir, MaxAge: time.Hour}.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("Run did not return for a zero interval")
	}

	s.NoFileExists(stale)
	s.FileExists(fresh)
}

func (s *SweeperRunTestSuite) TestRunStopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Sweeper{Dir: s.dir, MaxAge: time.Hour, Interval: 10 * time.Millisecond}.Run(ctx)
		close(done)
	}()

	stale := s.writeAged(tempPrefix+"late.csv", 2*time.Hour)
	s.Eventually(func() bool {
		_, err := os.Stat(stale)
		return os.IsNotExist(err)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.FailNow("Run did not stop after cancel")
	}
}

func (s *SweeperRunTestSuite) TestOtherFilesAreKept() {
	other := s.writeAged("report.csv", 48*time.Hour)
	n, err := Sweeper{Dir: s.dir, MaxAge: time.Hour}.SweepOnce(time.Now())
	s.Require().NoError(err)
	s.Zero(n)
	s.FileExists(other)
}

func TestSweeperRunTestSuite(t *testing.T) {
	suite.Run(t, new(SweeperRunTestSuite))
}
