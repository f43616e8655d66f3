package chrono

import (
	"time"

	"github.com/aschey/livetimer/internal/format"
	"go.uber.org/zap/zapcore"
)

// Result is the final measurement of a stopped Timer.
type Result struct {
	StartTime time.Time     `json:"startTime" yaml:"startTime"`
	EndTime   time.Time     `json:"endTime" yaml:"endTime"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
	Format    string        `json:"format" yaml:"format"`
	// TimedOut is reserved and currently always false.
	TimedOut bool `json:"timedOut" yaml:"timedOut"`
}

// Seconds is the elapsed time in fractional seconds.
func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

func (r Result) StartUnix() float64 {
	return unixSeconds(r.StartTime)
}

func (r Result) EndUnix() float64 {
	return unixSeconds(r.EndTime)
}

// String renders the elapsed time with the timer's format.
func (r Result) String() string {
	return format.Render(r.Elapsed, r.Format)
}

func (r Result) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddTime("start", r.StartTime)
	enc.AddTime("end", r.EndTime)
	enc.AddDuration("elapsed", r.Elapsed)
	enc.AddString("format", r.Format)
	enc.AddBool("timedOut", r.TimedOut)
	return nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
