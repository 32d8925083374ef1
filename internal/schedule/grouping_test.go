package schedule

import (
	"reflect"
	"testing"
	"time"
)

type timesMap map[string]time.Time

func (m timesMap) TimeOf(name string) (time.Time, bool) {
	t, ok := m[name]
	return t, ok
}

func TestChronological(t *testing.T) {
	day := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)
	times := timesMap{
		"lunch":   day.Add(12 * time.Hour),
		"opening": day.Add(9 * time.Hour),
		"closing": day.Add(17 * time.Hour),
	}

	got := Chronological([]string{"lunch", "closing", "opening"}, times)
	want := []string{"opening", "lunch", "closing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestChronologicalKeepsEncounterOrderForTies(t *testing.T) {
	day := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)
	times := timesMap{
		"alpha": day.Add(10 * time.Hour),
		"beta":  day.Add(10 * time.Hour),
		"gamma": day.Add(9 * time.Hour),
	}

	got := Chronological([]string{"beta", "alpha", "gamma"}, times)
	want := []string{"gamma", "beta", "alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestChronologicalSkipsUnknownNames(t *testing.T) {
	times := timesMap{
		"known": time.Date(2025, time.June, 9, 10, 0, 0, 0, time.UTC),
	}

	got := Chronological([]string{"ghost", "known"}, times)
	if !reflect.DeepEqual(got, []string{"known"}) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestGroupByCalendarDay(t *testing.T) {
	monday := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	times := timesMap{
		"mon-talk":  monday.Add(14 * time.Hour),
		"mon-party": monday.Add(9 * time.Hour),
		"tue-panel": tuesday.Add(10 * time.Hour),
	}

	got := GroupByCalendarDay([]string{"tue-panel", "mon-talk", "mon-party"}, times)
	want := [][]string{
		{"mon-party", "mon-talk"},
		{"tue-panel"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected buckets: %v", got)
	}
}

func TestGroupByCalendarDayEmpty(t *testing.T) {
	if got := GroupByCalendarDay(nil, timesMap{}); got != nil {
		t.Fatalf("expected no buckets, got %v", got)
	}
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2025, time.June, 9, 1, 0, 0, 0, time.UTC)
	night := time.Date(2025, time.June, 9, 23, 0, 0, 0, time.UTC)
	nextYear := morning.AddDate(1, 0, 0)

	if !SameCalendarDay(morning, night) {
		t.Fatalf("same date should match regardless of hour")
	}
	if SameCalendarDay(morning, nextYear) {
		t.Fatalf("same date in a different year should not match")
	}
}

func TestDistinctDays(t *testing.T) {
	monday := time.Date(2025, time.June, 9, 9, 0, 0, 0, time.UTC)

	t.Run("counts calendar days once", func(t *testing.T) {
		instants := []time.Time{
			monday,
			monday.Add(3 * time.Hour),
			monday.AddDate(0, 0, 1),
		}
		if got := DistinctDays(instants); got != 2 {
			t.Fatalf("expected 2 distinct days, got %d", got)
		}
	})

	t.Run("key ignores the year", func(t *testing.T) {
		// The reporting day key combines day-of-year and day-of-month
		// only, so the same date one year apart collapses to one day.
		instants := []time.Time{monday, monday.AddDate(1, 0, 0)}
		if got := DistinctDays(instants); got != 1 {
			t.Fatalf("expected 1 distinct day, got %d", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := DistinctDays(nil); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})
}
