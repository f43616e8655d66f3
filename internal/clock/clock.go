package clock

import (
	"sync"
	"time"
)

// Clock provides the two time references a timer needs.
// Now readings carry Go's monotonic clock and are only meant to be subtracted from each other.
// Wall readings are for reporting and never take part in duration math.
type Clock interface {
	Now() time.Time
	Wall() time.Time
}

// System is the default Clock implementation using the standard library.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Round(0) strips the monotonic reading so the value is safe to serialize.
func (systemClock) Wall() time.Time {
	return time.Now().Round(0)
}

// Mock is a Clock that only moves when told to.
type Mock struct {
	mu   sync.Mutex
	mono time.Time
	wall time.Time
}

func NewMock(wall time.Time) *Mock {
	return &Mock{
		mono: time.Unix(0, 0),
		wall: wall.Round(0),
	}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mono
}

func (m *Mock) Wall() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wall
}

// Advance moves both readings forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mono = m.mono.Add(d)
	m.wall = m.wall.Add(d)
}

// SetWall changes the wall reading without touching the monotonic one,
// the way an NTP correction or a manual clock change would.
func (m *Mock) SetWall(wall time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wall = wall.Round(0)
}
