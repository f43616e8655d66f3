package statusbar

import (
	"time"

	"github.com/aschey/livetimer/internal/display"
	"github.com/aschey/livetimer/internal/format"
	"github.com/aschey/livetimer/internal/timer"
	"go.uber.org/zap"
)

const DefaultInterval = 100 * time.Millisecond

type Params struct {
	Interval time.Duration
	Template string
	Logger   *zap.Logger
}

// StatusBar keeps a sink up to date with a timer's elapsed time until the timer stops.
type StatusBar struct {
	timer    *timer.Timer
	sink     display.Sink
	notifier *Notifier
	interval time.Duration
	template string
	logger   *zap.Logger
}

func NewStatusBar(t *timer.Timer, sink display.Sink, notifier *Notifier, params Params) *StatusBar {
	if params.Interval <= 0 {
		params.Interval = DefaultInterval
	}
	if params.Template == "" {
		params.Template = format.DefaultTemplate
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &StatusBar{
		timer:    t,
		sink:     sink,
		notifier: notifier,
		interval: params.Interval,
		template: params.Template,
		logger:   params.Logger,
	}
}
