package chrono

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MarvinJWendt/testza"
	"github.com/aschey/livetimer/internal/clock"
	"github.com/aschey/livetimer/internal/format"
	"github.com/aschey/livetimer/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var epoch = time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

func newMockTimer(t *testing.T, opts ...Option) (*Timer, *clock.Mock, *test.RecordingSink) {
	c := clock.NewMock(epoch)
	sink := test.NewRecordingSink()
	opts = append([]Option{WithClock(c), WithSink(sink), WithInterval(time.Millisecond)}, opts...)
	tm, err := New(opts...)
	testza.AssertNoError(t, err)
	return tm, c, sink
}

func TestPausedIntervalsAreExcluded(t *testing.T) {
	tm, c, _ := newMockTimer(t)

	_, err := tm.Start()
	testza.AssertNoError(t, err)
	c.Advance(200 * time.Millisecond)
	testza.AssertNoError(t, tm.Pause())
	c.Advance(200 * time.Millisecond)
	testza.AssertNoError(t, tm.Resume())
	c.Advance(150 * time.Millisecond)

	result, err := tm.Stop()
	testza.AssertNoError(t, err)
	testza.AssertEqual(t, 350*time.Millisecond, result.Elapsed)
	testza.AssertEqual(t, epoch, result.StartTime)
	testza.AssertEqual(t, epoch.Add(550*time.Millisecond), result.EndTime)
	testza.AssertEqual(t, DefaultFormat, result.Format)
	testza.AssertFalse(t, result.TimedOut)
}

func TestRealTimeScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps for half a second")
	}
	tm, err := New(WithSink(test.NewRecordingSink()))
	testza.AssertNoError(t, err)

	_, err = tm.Start()
	testza.AssertNoError(t, err)
	time.Sleep(200 * time.Millisecond)
	testza.AssertNoError(t, tm.Pause())
	time.Sleep(200 * time.Millisecond)
	testza.AssertNoError(t, tm.Resume())
	time.Sleep(150 * time.Millisecond)
	result, err := tm.Stop()
	testza.AssertNoError(t, err)

	testza.AssertInRange(t, result.Seconds(), 0.345, 0.42)
}

func TestStopTwiceReturnsSameResult(t *testing.T) {
	tm, c, sink := newMockTimer(t)
	_, err := tm.Start()
	testza.AssertNoError(t, err)
	c.Advance(time.Second)

	first, err := tm.Stop()
	testza.AssertNoError(t, err)
	c.Advance(time.Second)
	second, err := tm.Stop()
	testza.AssertNoError(t, err)

	testza.AssertEqual(t, first, second)
	testza.AssertEqual(t, 1, sink.FinishCalls())
	testza.AssertEqual(t, 0, sink.WritesAfterFinish())

	retained, ok := tm.Result()
	testza.AssertTrue(t, ok)
	testza.AssertEqual(t, first, retained)
}

func TestClosingLineMatchesResult(t *testing.T) {
	tm, c, sink := newMockTimer(t, WithFormat("%M:%S.%ms"))
	_, err := tm.Start()
	testza.AssertNoError(t, err)
	c.Advance(61*time.Second + 7*time.Millisecond)

	result, err := tm.Stop()
	testza.AssertNoError(t, err)

	final, ok := sink.Final()
	testza.AssertTrue(t, ok)
	testza.AssertEqual(t, format.Render(result.Elapsed, "%M:%S.%ms"), final.Line)
	testza.AssertEqual(t, "01:01.007", final.Line)
	testza.AssertEqual(t, Stopped, final.Phase)
}

func TestNoWritesAfterStopReturns(t *testing.T) {
	tm, _, sink := newMockTimer(t)
	_, err := tm.Start()
	testza.AssertNoError(t, err)
	time.Sleep(10 * time.Millisecond)

	_, err = tm.Stop()
	testza.AssertNoError(t, err)
	writes := sink.Writes()

	time.Sleep(10 * time.Millisecond)
	testza.AssertEqual(t, writes, sink.Writes())
	testza.AssertEqual(t, 0, sink.WritesAfterFinish())
}

func TestPauseBeforeStartFails(t *testing.T) {
	tm, _, sink := newMockTimer(t)

	err := tm.Pause()
	testza.AssertErrorIs(t, err, ErrInvalidTransition)
	testza.AssertEqual(t, "cannot pause timer: not started", err.Error())
	testza.AssertErrorIs(t, tm.Resume(), ErrInvalidTransition)
	_, err = tm.Stop()
	testza.AssertErrorIs(t, err, ErrInvalidTransition)

	time.Sleep(5 * time.Millisecond)
	testza.AssertEqual(t, 0, sink.Writes())
	testza.AssertEqual(t, Idle, tm.Phase())
	testza.AssertEqual(t, time.Duration(0), tm.Elapsed())
}

func TestStartTwiceFails(t *testing.T) {
	tm, _, _ := newMockTimer(t)
	same, err := tm.Start()
	testza.AssertNoError(t, err)
	testza.AssertEqual(t, tm, same)

	_, err = tm.Start()
	var transitionErr *TransitionError
	testza.AssertTrue(t, errors.As(err, &transitionErr))
	testza.AssertEqual(t, Running, transitionErr.Phase)

	_, err = tm.Stop()
	testza.AssertNoError(t, err)
	_, err = tm.Start()
	testza.AssertErrorIs(t, err, ErrInvalidTransition)
}

func TestPauseAndResumeAfterStopAreNoops(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tm, c, sink := newMockTimer(t, WithLogger(zap.New(core)))
	_, err := tm.Start()
	testza.AssertNoError(t, err)
	c.Advance(time.Second)
	result, err := tm.Stop()
	testza.AssertNoError(t, err)
	writes := sink.Writes()

	testza.AssertNoError(t, tm.Pause())
	testza.AssertNoError(t, tm.Resume())
	c.Advance(time.Second)
	testza.AssertEqual(t, result.Elapsed, tm.Elapsed())
	testza.AssertEqual(t, Stopped, tm.Phase())
	testza.AssertEqual(t, writes, sink.Writes())
	testza.AssertEqual(t, 0, logs.FilterMessage("timer paused").Len())
	testza.AssertEqual(t, 0, logs.FilterMessage("timer resumed").Len())
}

// gatedSink holds its first Refresh until release is closed. When timer is set,
// every write also reads the timer back.
type gatedSink struct {
	*test.RecordingSink
	timer   *Timer
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedSink() *gatedSink {
	return &gatedSink{
		RecordingSink: test.NewRecordingSink(),
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
}

func (s *gatedSink) Refresh(frame Frame) error {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	s.readTimer()
	return s.RecordingSink.Refresh(frame)
}

func (s *gatedSink) Finish(frame Frame) error {
	s.readTimer()
	return s.RecordingSink.Finish(frame)
}

func (s *gatedSink) readTimer() {
	if s.timer == nil {
		return
	}
	_ = s.timer.Phase()
	_ = s.timer.Elapsed()
	_, _ = s.timer.Result()
}

func stopInBackground(tm *Timer) <-chan Result {
	stopped := make(chan Result, 1)
	go func() {
		result, _ := tm.Stop()
		stopped <- result
	}()
	return stopped
}

func TestStopWaitsForRefreshInFlight(t *testing.T) {
	c := clock.NewMock(epoch)
	sink := newGatedSink()
	tm, err := New(WithClock(c), WithSink(sink), WithInterval(time.Hour), WithFormat("%S.%f"))
	testza.AssertNoError(t, err)
	_, err = tm.Start()
	testza.AssertNoError(t, err)

	<-sink.entered
	c.Advance(time.Second)
	stopped := stopInBackground(tm)

	select {
	case <-stopped:
		t.Fatal("Stop returned while a refresh was still being written")
	case <-time.After(50 * time.Millisecond):
	}
	close(sink.release)
	result := <-stopped

	frames := sink.Frames()
	testza.AssertLen(t, frames, 1)
	testza.AssertEqual(t, "00.000", frames[0].Line)
	final, ok := sink.Final()
	testza.AssertTrue(t, ok)
	testza.AssertEqual(t, format.Render(result.Elapsed, "%S.%f"), final.Line)
	testza.AssertEqual(t, "01.000", final.Line)
	testza.AssertEqual(t, 1, sink.FinishCalls())
	testza.AssertEqual(t, 0, sink.WritesAfterFinish())
}

func TestStopWithSinkReadingTimer(t *testing.T) {
	c := clock.NewMock(epoch)
	sink := newGatedSink()
	tm, err := New(WithClock(c), WithSink(sink), WithInterval(time.Millisecond))
	testza.AssertNoError(t, err)
	sink.timer = tm
	_, err = tm.Start()
	testza.AssertNoError(t, err)

	<-sink.entered
	c.Advance(time.Second)
	stopped := stopInBackground(tm)
	time.Sleep(20 * time.Millisecond)
	close(sink.release)

	testza.AssertCompletesIn(t, 2*time.Second, func() {
		result := <-stopped
		testza.AssertEqual(t, time.Second, result.Elapsed)
	})
	testza.AssertEqual(t, 1, sink.FinishCalls())
}

func TestConcurrentStop(t *testing.T) {
	tm, c, sink := newMockTimer(t)
	_, err := tm.Start()
	testza.AssertNoError(t, err)
	c.Advance(time.Second)

	results := make([]Result, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := tm.Stop()
			testza.AssertNoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		testza.AssertEqual(t, results[0], result)
	}
	testza.AssertEqual(t, 1, sink.FinishCalls())
}

func TestRunStopsOnError(t *testing.T) {
	tm, c, _ := newMockTimer(t)
	failure := errors.New("work failed")

	err := tm.Run(func(tm *Timer) error {
		c.Advance(time.Second)
		return failure
	})

	testza.AssertErrorIs(t, err, failure)
	result, ok := tm.Result()
	testza.AssertTrue(t, ok)
	testza.AssertEqual(t, time.Second, result.Elapsed)
	testza.AssertEqual(t, Stopped, tm.Phase())
}

func TestRunStopsOnPanic(t *testing.T) {
	tm, c, sink := newMockTimer(t)

	testza.AssertPanics(t, func() {
		_ = tm.Run(func(tm *Timer) error {
			c.Advance(2 * time.Second)
			panic("boom")
		})
	})

	result, ok := tm.Result()
	testza.AssertTrue(t, ok)
	testza.AssertEqual(t, 2*time.Second, result.Elapsed)
	testza.AssertEqual(t, 1, sink.FinishCalls())
}

func TestRunOnStartedTimerFails(t *testing.T) {
	tm, _, _ := newMockTimer(t)
	_, err := tm.Start()
	testza.AssertNoError(t, err)

	called := false
	err = tm.Run(func(*Timer) error {
		called = true
		return nil
	})
	testza.AssertErrorIs(t, err, ErrInvalidTransition)
	testza.AssertFalse(t, called)
	_, _ = tm.Stop()
}

func TestMeasure(t *testing.T) {
	c := clock.NewMock(epoch)
	result, err := Measure(func(tm *Timer) error {
		c.Advance(time.Second)
		if err := tm.Pause(); err != nil {
			return err
		}
		c.Advance(time.Second)
		return tm.Resume()
	}, WithClock(c), WithSink(test.NewRecordingSink()), WithFormat("%S.%f"))

	testza.AssertNoError(t, err)
	testza.AssertEqual(t, time.Second, result.Elapsed)
	testza.AssertEqual(t, "01.000", result.String())
}

func TestInvalidInterval(t *testing.T) {
	_, err := New(WithInterval(0))
	testza.AssertErrorIs(t, err, ErrInvalidInterval)

	_, err = Measure(func(*Timer) error { return nil }, WithInterval(-time.Second))
	testza.AssertErrorIs(t, err, ErrInvalidInterval)
}

func TestIndependentTimers(t *testing.T) {
	a, ca, _ := newMockTimer(t)
	b, cb, _ := newMockTimer(t)
	_, err := a.Start()
	testza.AssertNoError(t, err)
	_, err = b.Start()
	testza.AssertNoError(t, err)

	ca.Advance(time.Second)
	testza.AssertNoError(t, b.Pause())
	cb.Advance(time.Hour)

	resultA, err := a.Stop()
	testza.AssertNoError(t, err)
	resultB, err := b.Stop()
	testza.AssertNoError(t, err)
	testza.AssertEqual(t, time.Second, resultA.Elapsed)
	testza.AssertEqual(t, time.Duration(0), resultB.Elapsed)
}

func TestStopIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tm, c, _ := newMockTimer(t, WithLogger(zap.New(core)))
	_, err := tm.Start()
	testza.AssertNoError(t, err)
	c.Advance(time.Second)
	_, err = tm.Stop()
	testza.AssertNoError(t, err)

	stopped := logs.FilterMessage("timer stopped").All()
	testza.AssertLen(t, stopped, 1)
	result := stopped[0].ContextMap()["result"].(map[string]interface{})
	testza.AssertEqual(t, time.Second, result["elapsed"])
}

func TestResultSeconds(t *testing.T) {
	result := Result{
		StartTime: time.Unix(10, 500_000_000),
		EndTime:   time.Unix(12, 0),
		Elapsed:   1500 * time.Millisecond,
		Format:    DefaultFormat,
	}

	testza.AssertEqual(t, 1.5, result.Seconds())
	testza.AssertEqual(t, 10.5, result.StartUnix())
	testza.AssertEqual(t, 12.0, result.EndUnix())
	testza.AssertEqual(t, "Elapsed: 00:00:01.500", result.String())
}
