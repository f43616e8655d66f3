package chrono

import (
	"errors"
	"os"
	"time"

	"github.com/aschey/livetimer/internal/clock"
	"github.com/aschey/livetimer/internal/display"
	"github.com/aschey/livetimer/internal/format"
	"github.com/aschey/livetimer/internal/statusbar"
	"go.uber.org/zap"
)

const (
	DefaultInterval = statusbar.DefaultInterval
	DefaultFormat   = format.DefaultTemplate
)

var ErrInvalidInterval = errors.New("update interval must be positive")

type (
	Sink  = display.Sink
	Frame = display.Frame
	Clock = clock.Clock
)

type options struct {
	interval time.Duration
	format   string
	sink     Sink
	clock    Clock
	logger   *zap.Logger
}

type Option func(*options)

// WithInterval sets how often the status line is redrawn. It has no effect on what is measured.
func WithInterval(interval time.Duration) Option {
	return func(o *options) {
		o.interval = interval
	}
}

func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

func WithSink(sink Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{
		interval: DefaultInterval,
		format:   DefaultFormat,
		clock:    clock.System,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.interval <= 0 {
		return o, ErrInvalidInterval
	}
	if o.sink == nil {
		o.sink = display.NewTerminal(os.Stdout)
	}
	if o.clock == nil {
		o.clock = clock.System
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o, nil
}
