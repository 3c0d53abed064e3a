package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/datasynth/internal/metrics"
)

// Sweeper removes temp CSV files that outlived their request, e.g. after a
// crash between creation and the end of the response.
type Sweeper struct {
	Dir      string
	MaxAge   time.Duration
	Interval time.Duration
}

// SweepOnce deletes matching files last modified before now-MaxAge and
// returns how many were removed. Individual failures are logged and skipped.
func (s Sweeper) SweepOnce(now time.Time) (int, error) {
	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	matches, err := filepath.Glob(filepath.Join(dir, tempGlob))
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-s.MaxAge)
	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.IsDir() || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("sweeper failed to remove temp file")
			continue
		}
		removed++
	}
	metrics.AddTempFilesSwept(removed)
	return removed, nil
}

// Run sweeps immediately and then every Interval until ctx is done.
// A non-positive Interval sweeps once.
func (s Sweeper) Run(ctx context.Context) {
	s.sweep()
	if s.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s Sweeper) sweep() {
	n, err := s.SweepOnce(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("temp file sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int("removed", n).Msg("removed orphaned temp files")
	}
}
