package statusbar

import (
	"context"
	"os/signal"
	"time"

	"github.com/aschey/livetimer/internal/timer"
	"go.uber.org/zap"
)

// Run redraws the status line until ctx is cancelled or the timer is seen stopped,
// then writes the closing line and returns. Nothing is written after Run returns.
//
// A redraw that is already underway when the timer stops is allowed to finish;
// the closing line that follows it always carries the frozen final value.
func (s *StatusBar) Run(ctx context.Context) {
	sigCh := getSignalChannel()
	defer signal.Stop(sigCh)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.refresh(s.timer.Snapshot())
	for {
		select {
		case <-ctx.Done():
			s.finish()
			return
		case <-ticker.C:
			// Timer tick, don't need to do anything except re-render
		case <-s.notifier.changed():
			// Paused or resumed, re-render now instead of waiting for the tick
		case <-sigCh:
			// Resize event, don't need to do anything except re-render
		}

		snapshot := s.timer.Snapshot()
		if snapshot.Phase == timer.Stopped {
			s.finish()
			return
		}
		s.refresh(snapshot)
	}
}

func (s *StatusBar) refresh(snapshot timer.Snapshot) {
	if err := s.sink.Refresh(s.frame(snapshot)); err != nil {
		s.logger.Warn("failed to refresh status line",
			zap.Error(err), zap.Duration("elapsed", snapshot.Elapsed))
	}
}

func (s *StatusBar) finish() {
	snapshot := s.timer.Snapshot()
	if err := s.sink.Finish(s.frame(snapshot)); err != nil {
		s.logger.Warn("failed to write final status line",
			zap.Error(err), zap.Duration("elapsed", snapshot.Elapsed))
	}
}
