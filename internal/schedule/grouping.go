package schedule

import "time"

// Times resolves an event name to its start time. Implementations report
// false for names they do not know; unknown names are skipped by the
// grouping transforms rather than treated as errors.
type Times interface {
	TimeOf(name string) (time.Time, bool)
}

// Chronological arranges event names by ascending start time. The ordering is
// a stable insertion: each name is placed before the first existing entry
// with a strictly later start, so names sharing a timestamp keep their input
// encounter order.
func Chronological(names []string, times Times) []string {
	ordered := make([]string, 0, len(names))

	for _, name := range names {
		start, ok := times.TimeOf(name)
		if !ok {
			continue
		}

		inserted := false
		for i, placed := range ordered {
			placedStart, _ := times.TimeOf(placed)
			if start.Before(placedStart) {
				ordered = append(ordered[:i], append([]string{name}, ordered[i:]...)...)
				inserted = true
				break
			}
		}
		if !inserted {
			ordered = append(ordered, name)
		}
	}

	return ordered
}

// GroupByCalendarDay arranges event names into per-day buckets. The input is
// first ordered chronologically, then folded: a new bucket opens whenever an
// event's calendar day differs from the day of the bucket's first entry.
// Buckets therefore come out in day order and each bucket stays chronological.
func GroupByCalendarDay(names []string, times Times) [][]string {
	ordered := Chronological(names, times)

	var buckets [][]string
	for _, name := range ordered {
		start, _ := times.TimeOf(name)

		if len(buckets) > 0 {
			open := buckets[len(buckets)-1]
			openStart, _ := times.TimeOf(open[0])
			if SameCalendarDay(start, openStart) {
				buckets[len(buckets)-1] = append(open, name)
				continue
			}
		}
		buckets = append(buckets, []string{name})
	}

	return buckets
}

// SameCalendarDay reports whether two instants fall on the same calendar day,
// comparing both the year and the day of the year.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DayKey produces the distinct-day key used by the statistics averages. The
// key combines day-of-year and day-of-month but not the year, matching the
// conference reporting behaviour: events exactly one year apart share a key.
func DayKey(t time.Time) string {
	return dayKey(t)
}
