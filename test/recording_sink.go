package test

import (
	"sync"

	"github.com/aschey/livetimer/internal/display"
)

// RecordingSink keeps every frame it is given. It is safe for concurrent use.
type RecordingSink struct {
	mu                sync.Mutex
	frames            []display.Frame
	final             *display.Frame
	finishCalls       int
	writesAfterFinish int
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (r *RecordingSink) Refresh(frame display.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.final != nil {
		r.writesAfterFinish++
	}
	r.frames = append(r.frames, frame)
	return nil
}

func (r *RecordingSink) Finish(frame display.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.final != nil {
		r.writesAfterFinish++
	}
	r.finishCalls++
	r.final = &frame
	return nil
}

func (r *RecordingSink) Frames() []display.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]display.Frame{}, r.frames...)
}

// Final returns the closing frame and whether Finish has been called.
func (r *RecordingSink) Final() (display.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.final == nil {
		return display.Frame{}, false
	}
	return *r.final, true
}

func (r *RecordingSink) FinishCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finishCalls
}

func (r *RecordingSink) WritesAfterFinish() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writesAfterFinish
}

// Writes counts every call, refreshes and the closing line together.
func (r *RecordingSink) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames) + r.finishCalls
}
