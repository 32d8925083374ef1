package schedule

import "time"

// EventDuration is the fixed length of every conference event. End times are
// always derived from the start time; they are never stored independently.
const EventDuration = time.Hour

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// EventInterval derives the window occupied by an event starting at start.
func EventInterval(start time.Time) Interval {
	return Interval{Start: start, End: start.Add(EventDuration)}
}

// Overlaps reports whether the two half-open windows conflict. Touching
// endpoints do not count: an event ending at 11:00 does not conflict with one
// starting at 11:00.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// IsValid reports whether the interval has positive length.
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}
