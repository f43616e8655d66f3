package display

import (
	"time"

	"github.com/aschey/livetimer/internal/timer"
)

// Frame is one rendered status line together with the snapshot it was rendered from.
type Frame struct {
	Line    string
	Elapsed time.Duration
	Phase   timer.Phase
}

// Sink receives the status line. Refresh replaces whatever the previous call wrote,
// Finish writes the closing line and is called exactly once.
type Sink interface {
	Refresh(frame Frame) error
	Finish(frame Frame) error
}
