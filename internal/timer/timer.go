package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aschey/livetimer/internal/clock"
)

type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var ErrInvalidTransition = errors.New("invalid timer transition")

// TransitionError reports an operation that is not allowed in the timer's current phase.
type TransitionError struct {
	Op    string
	Phase Phase
}

func (e *TransitionError) Error() string {
	if e.Phase == Idle {
		return fmt.Sprintf("cannot %s timer: not started", e.Op)
	}
	return fmt.Sprintf("cannot %s timer: already %s", e.Op, e.Phase)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Snapshot is a consistent view of the phase and the elapsed time at one instant.
type Snapshot struct {
	Phase   Phase
	Elapsed time.Duration
}

// Timer tracks running time across start/pause/resume/stop.
// All methods are safe for concurrent use.
type Timer struct {
	mu    sync.Mutex
	clock clock.Clock

	phase       Phase
	startMark   time.Time
	accumulated time.Duration
	wallStart   time.Time
	wallEnd     time.Time
}

func New(c clock.Clock) *Timer {
	if c == nil {
		c = clock.System
	}
	return &Timer{clock: c}
}

func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != Idle {
		return &TransitionError{Op: "start", Phase: t.phase}
	}
	t.wallStart = t.clock.Wall()
	t.startMark = t.clock.Now()
	t.accumulated = 0
	t.phase = Running
	return nil
}

// Pause freezes the elapsed time. Pausing a paused or stopped timer does nothing.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.phase {
	case Idle:
		return &TransitionError{Op: "pause", Phase: t.phase}
	case Running:
		t.accumulate()
		t.phase = Paused
	}
	return nil
}

// Resume continues a paused timer. Resuming a running or stopped timer does nothing.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.phase {
	case Idle:
		return &TransitionError{Op: "resume", Phase: t.phase}
	case Paused:
		t.startMark = t.clock.Now()
		t.phase = Running
	}
	return nil
}

// Stop freezes the timer for good and returns the final elapsed time.
// Later calls return the same value.
func (t *Timer) Stop() (time.Duration, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.phase {
	case Idle:
		return 0, &TransitionError{Op: "stop", Phase: t.phase}
	case Stopped:
		return t.accumulated, nil
	case Running:
		t.accumulate()
	}
	t.wallEnd = t.clock.Wall()
	t.phase = Stopped
	return t.accumulated, nil
}

func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed()
}

func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{Phase: t.phase, Elapsed: t.elapsed()}
}

func (t *Timer) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

func (t *Timer) WallStart() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wallStart
}

// WallEnd is zero until the timer is stopped.
func (t *Timer) WallEnd() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wallEnd
}

// Callers must hold mu.
func (t *Timer) accumulate() {
	t.accumulated += t.clock.Now().Sub(t.startMark)
}

// Callers must hold mu.
func (t *Timer) elapsed() time.Duration {
	if t.phase == Running {
		return t.accumulated + t.clock.Now().Sub(t.startMark)
	}
	return t.accumulated
}
