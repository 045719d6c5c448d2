package clock

import "time"

// Clock supplies the current instant. Slot generation and lifecycle guards
// take "now" from here instead of the system clock so tests stay deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

// At returns a Clock pinned to t.
func At(t time.Time) Fixed {
	return Fixed{Instant: t}
}
