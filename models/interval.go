package models

import "time"

// Interval is a half-open time range [Start, End). The end instant is not part
// of the occupied range, so a booking ending at 10:00 does not collide with one
// starting at 10:00. Every schedule, break and booking comparison in the engine
// routes through this type.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval occupied by something starting at start and
// lasting d.
func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// Overlaps reports whether the two half-open ranges share at least one instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies fully within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// IsValid reports whether the interval has positive length.
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
