// Package chrono measures elapsed time with pause and resume while keeping a
// live status line up to date.
//
//	t, err := chrono.New(chrono.WithFormat("%M:%S.%f"))
//	if err != nil {
//		return err
//	}
//	err = t.Run(func(t *chrono.Timer) error {
//		return doWork()
//	})
//	result, _ := t.Result()
package chrono

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aschey/livetimer/internal/statusbar"
	"github.com/aschey/livetimer/internal/timer"
	"go.uber.org/zap"
)

type (
	Phase           = timer.Phase
	TransitionError = timer.TransitionError
)

const (
	Idle    = timer.Idle
	Running = timer.Running
	Paused  = timer.Paused
	Stopped = timer.Stopped
)

var ErrInvalidTransition = timer.ErrInvalidTransition

// Timer runs one measurement: it is started once and stopped once.
// Its methods may be called from any goroutine.
type Timer struct {
	opts     options
	notifier *statusbar.Notifier

	mu      sync.Mutex
	timer   *timer.Timer
	cancel  context.CancelFunc
	done    chan struct{}
	result  *Result
	stopErr error

	stopOnce sync.Once
}

func New(opts ...Option) (*Timer, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Timer{opts: o, notifier: statusbar.NewNotifier()}, nil
}

// Start begins measuring and launches the status line updater.
// It returns the timer so that construction and start can be chained.
func (t *Timer) Start() (*Timer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		return t, &TransitionError{Op: "start", Phase: t.timer.Phase()}
	}

	tm := timer.New(t.opts.clock)
	if err := tm.Start(); err != nil {
		return t, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	bar := statusbar.NewStatusBar(tm, t.opts.sink, t.notifier, statusbar.Params{
		Interval: t.opts.interval,
		Template: t.opts.format,
		Logger:   t.opts.logger,
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		bar.Run(ctx)
	}()

	t.timer = tm
	t.cancel = cancel
	t.done = done
	t.opts.logger.Debug("timer started", zap.Time("start", tm.WallStart()))
	return t, nil
}

func (t *Timer) Pause() error {
	tm := t.current()
	if tm == nil {
		return &TransitionError{Op: "pause", Phase: timer.Idle}
	}
	if err := tm.Pause(); err != nil {
		return err
	}
	if tm.Phase() == timer.Stopped {
		return nil
	}
	t.notifier.Notify()
	t.opts.logger.Debug("timer paused", zap.Duration("elapsed", tm.Elapsed()))
	return nil
}

func (t *Timer) Resume() error {
	tm := t.current()
	if tm == nil {
		return &TransitionError{Op: "resume", Phase: timer.Idle}
	}
	if err := tm.Resume(); err != nil {
		return err
	}
	if tm.Phase() == timer.Stopped {
		return nil
	}
	t.notifier.Notify()
	t.opts.logger.Debug("timer resumed", zap.Duration("elapsed", tm.Elapsed()))
	return nil
}

// Stop freezes the measurement, waits for the updater to write its closing line and exit,
// and returns the result. Every later call returns the same result, and concurrent
// callers wait for the first one to finish.
//
// The lock is not held while waiting for the updater, so a sink may call back into
// the timer from Refresh. A sink must not call Stop itself.
func (t *Timer) Stop() (Result, error) {
	tm := t.current()
	if tm == nil {
		return Result{}, &TransitionError{Op: "stop", Phase: timer.Idle}
	}

	t.stopOnce.Do(t.stop)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopErr != nil {
		return Result{}, t.stopErr
	}
	return *t.result, nil
}

func (t *Timer) stop() {
	t.mu.Lock()
	tm, cancel, done := t.timer, t.cancel, t.done
	t.mu.Unlock()

	// Freezing first means the updater's closing line shows exactly the value returned here.
	elapsed, err := tm.Stop()
	cancel()
	<-done

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.stopErr = err
		return
	}
	t.result = &Result{
		StartTime: tm.WallStart(),
		EndTime:   tm.WallEnd(),
		Elapsed:   elapsed,
		Format:    t.opts.format,
	}
	t.opts.logger.Info("timer stopped", zap.Object("result", *t.result))
}

// Elapsed is the time measured so far, or zero before Start.
func (t *Timer) Elapsed() time.Duration {
	tm := t.current()
	if tm == nil {
		return 0
	}
	return tm.Elapsed()
}

func (t *Timer) Phase() Phase {
	tm := t.current()
	if tm == nil {
		return timer.Idle
	}
	return tm.Phase()
}

// Result returns the result once the timer has been stopped.
func (t *Timer) Result() (Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result == nil {
		return Result{}, false
	}
	return *t.result, true
}

// Run starts the timer, calls fn and stops the timer on the way out,
// whether fn returns normally, returns an error or panics.
// An error from fn takes precedence over one from Stop.
func (t *Timer) Run(fn func(t *Timer) error) (err error) {
	if _, err := t.Start(); err != nil {
		return err
	}
	defer func() {
		if _, stopErr := t.Stop(); stopErr != nil && err == nil {
			err = fmt.Errorf("error stopping timer: %w", stopErr)
		}
	}()
	return fn(t)
}

// Measure creates a timer, runs fn inside it and returns the result.
func Measure(fn func(t *Timer) error, opts ...Option) (Result, error) {
	t, err := New(opts...)
	if err != nil {
		return Result{}, err
	}
	err = t.Run(fn)
	result, _ := t.Result()
	return result, err
}

func (t *Timer) current() *timer.Timer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer
}
