package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const DefaultTemplate = "Elapsed: %H:%M:%S.%f"

// Render substitutes the elapsed duration into template.
//
//	%H  hours, at least two digits, never wrapped at 24
//	%M  minutes, 00-59
//	%S  seconds, 00-59
//	%f  milliseconds, 000-999
//	%ms same value as %f
//
// Any other % sequence is left as is. The duration is rounded to the nearest
// millisecond before it is split up, so a rounding carry moves into the seconds.
func Render(elapsed time.Duration, template string) string {
	if elapsed < 0 {
		elapsed = 0
	}
	totalMillis := int64(elapsed.Round(time.Millisecond) / time.Millisecond)

	hours := totalMillis / int64(time.Hour/time.Millisecond)
	minutes := totalMillis / int64(time.Minute/time.Millisecond) % 60
	seconds := totalMillis / int64(time.Second/time.Millisecond) % 60
	millis := fmt.Sprintf("%03d", totalMillis%1000)

	// Arguments are tried in order at each position, so %ms has to come first.
	replacer := strings.NewReplacer(
		"%ms", millis,
		"%H", fmt.Sprintf("%02d", hours),
		"%M", fmt.Sprintf("%02d", minutes),
		"%S", fmt.Sprintf("%02d", seconds),
		"%f", millis,
	)
	return replacer.Replace(template)
}

// RenderSeconds is Render for a duration expressed in floating point seconds.
// NaN and negative values render as zero. Values too large for a time.Duration,
// including +Inf, saturate at the largest Duration.
func RenderSeconds(seconds float64, template string) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	nanos := math.Round(seconds * float64(time.Second))
	if nanos >= math.MaxInt64 {
		return Render(time.Duration(math.MaxInt64), template)
	}
	return Render(time.Duration(nanos), template)
}
