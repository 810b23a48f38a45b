package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

// Now returns the current local time truncated to whole seconds, matching
// the precision of stored timestamps.
func (s SystemClock) Now() time.Time {
	return time.Now().Truncate(time.Second)
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
