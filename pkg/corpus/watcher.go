package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceWindow coalesces bursts of file events (exports rewrite several
// files in quick succession) into a single reload.
const debounceWindow = 500 * time.Millisecond

// Watch reloads the store whenever files in the corpus directory change.
// It blocks until the context is cancelled. Reload failures are logged and
// the previous snapshot stays live.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating corpus watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watching corpus dir: %w", err)
	}

	s.logger.Info("watching corpus for changes", zap.String("dir", s.dir))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isCorpusFile(event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if _, err := s.Reload(); err != nil {
				s.logger.Error("corpus reload failed, keeping previous snapshot",
					zap.Error(err),
				)
			}

		case err := <-watcher.Errors:
			s.logger.Warn("corpus watcher error", zap.Error(err))
		}
	}
}
