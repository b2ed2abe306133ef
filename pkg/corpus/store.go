package corpus

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/vitals/pkg/aggregate"
	"github.com/papercomputeco/vitals/pkg/health"
)

// State is one immutable load of the corpus: the raw samples plus the
// aggregates derived from them. Requests read whichever State was current
// when they started; a reload swaps in a new State without touching old ones.
type State struct {
	Samples    []health.Sample
	Aggregates *aggregate.Snapshot
	LoadedAt   time.Time

	// SkippedLines counts malformed corpus lines dropped during the load.
	SkippedLines int
}

// Empty reports whether the load produced no usable samples.
func (st *State) Empty() bool {
	return len(st.Samples) == 0
}

// Store owns the current corpus State. All mutation happens through Reload,
// which builds a complete replacement State before publishing it with a
// single atomic pointer swap. Readers never block and never see a partial
// load.
type Store struct {
	dir    string
	logger *zap.Logger
	state  atomic.Pointer[State]
}

// Open creates a Store over the given corpus directory and performs the
// initial load. A missing or empty directory is not an error: the store
// starts empty and every query reports no data available.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	s := &Store{
		dir:    dir,
		logger: logger,
	}

	if _, err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// State returns the current corpus snapshot. The returned value is shared
// and must be treated as read-only.
func (s *Store) State() *State {
	return s.state.Load()
}

// Reload re-reads the corpus directory, rebuilds aggregates, and atomically
// replaces the current State. Concurrent readers keep the snapshot they
// already hold. On a read failure the previous State stays in place.
func (s *Store) Reload() (*State, error) {
	samples, skipped, err := loadDir(s.dir, s.logger)
	if err != nil {
		return nil, err
	}

	next := &State{
		Samples:      samples,
		Aggregates:   aggregate.Build(samples),
		LoadedAt:     time.Now(),
		SkippedLines: skipped,
	}

	s.state.Store(next)

	s.logger.Info("corpus loaded",
		zap.String("dir", s.dir),
		zap.Int("samples", len(samples)),
		zap.Int("skipped_lines", skipped),
		zap.Int("categories", len(next.Aggregates.Series)),
	)

	return next, nil
}
