package schedule

import (
	"fmt"
	"time"
)

func dayKey(t time.Time) string {
	return fmt.Sprintf("%d %d", t.YearDay(), t.Day())
}

// DistinctDays counts the number of distinct calendar days covered by the
// given instants, using the yearless DayKey.
func DistinctDays(instants []time.Time) int {
	seen := make(map[string]struct{}, len(instants))
	for _, t := range instants {
		seen[dayKey(t)] = struct{}{}
	}
	return len(seen)
}
