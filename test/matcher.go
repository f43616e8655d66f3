package test

import (
	"github.com/aschey/livetimer/internal/display"
	"go.uber.org/mock/gomock"
)

func NewMatcher(customMatcher func(arg interface{}) bool) gomock.Matcher {
	return matcherCustomizer{customMatcher}
}

// NewFrameMatcher matches a display.Frame argument.
func NewFrameMatcher(customMatcher func(frame display.Frame) bool) gomock.Matcher {
	return NewMatcher(func(arg interface{}) bool {
		frame, ok := arg.(display.Frame)
		return ok && customMatcher(frame)
	})
}

type matcherCustomizer struct {
	matcherFunction func(arg interface{}) bool
}

func (o matcherCustomizer) Matches(x interface{}) bool {
	return o.matcherFunction(x)
}

func (o matcherCustomizer) String() string {
	return "[call back function matcher has returned false]"
}
