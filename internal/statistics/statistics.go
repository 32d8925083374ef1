// Package statistics computes the read-only aggregate queries shown on the
// organizer summary: popularity ranks, fill percentages, and per-day
// averages. Nothing here mutates registry state.
package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/schedule"
)

// Engine answers aggregate queries over the event and room registries.
type Engine struct {
	events *conference.EventRegistry
	rooms  *conference.RoomRegistry
}

// NewEngine wires an engine over the two registries it reads.
func NewEngine(events *conference.EventRegistry, rooms *conference.RoomRegistry) *Engine {
	return &Engine{events: events, rooms: rooms}
}

// MostPopularEventType returns the event variants tied for the highest
// scheduled count. With zero events the result is empty rather than all
// three variants tied at zero.
func (e *Engine) MostPopularEventType() []conference.EventType {
	counts := e.events.CountByType()
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return nil
	}
	var popular []conference.EventType
	for _, typ := range []conference.EventType{conference.TypeParty, conference.TypeTalk, conference.TypeDiscussion} {
		if counts[typ] == max {
			popular = append(popular, typ)
		}
	}
	return popular
}

// MostPopularEventTypeCount returns the scheduled count of the most popular
// variant, 0 when no events exist.
func (e *Engine) MostPopularEventTypeCount() int {
	max := 0
	for _, n := range e.events.CountByType() {
		if n > max {
			max = n
		}
	}
	return max
}

// FillPercentage returns the event's attendee count over its capacity as a
// rounded whole percentage, e.g. "75%".
func (e *Engine) FillPercentage(eventName string) (string, error) {
	event, err := e.events.Get(eventName)
	if err != nil {
		return "", err
	}
	ratio := float64(event.AttendeeCount()) / float64(event.Capacity())
	return fmt.Sprintf("%.0f%%", ratio*100), nil
}

// FillPercentages returns one "name : pct full" line per event, ordered by
// event name.
func (e *Engine) FillPercentages() []string {
	return lo.Map(e.events.Events(), func(event *conference.Event, _ int) string {
		ratio := float64(event.AttendeeCount()) / float64(event.Capacity())
		return fmt.Sprintf("%s : %.0f%% full", event.Name(), ratio*100)
	})
}

// TopEvents returns the event names occupying the given popularity rank,
// measured by attendee count. Ties share a rank: three events tied for the
// largest count all sit at rank 1, and rank 2 is drawn from the strictly
// smaller remainder. A rank whose maximum count is 0 is empty.
func (e *Engine) TopEvents(rank int) []string {
	pool := e.events.Events()
	names, _ := topTier(pool, rank, func(event *conference.Event) int {
		return event.AttendeeCount()
	}, (*conference.Event).Name)
	return names
}

// TopRooms returns the room codes occupying the given popularity rank,
// measured by hosted event count, with the same tie handling as TopEvents.
func (e *Engine) TopRooms(rank int) []string {
	codes, _ := topTier(e.rooms.Rooms(), rank, func(room *conference.Room) int {
		return room.HostedEventCount()
	}, (*conference.Room).Code)
	return codes
}

// topTier peels off rank-1..rank-(n-1) maxima and returns the labels of the
// nth tier, sorted. The bool reports whether the tier's maximum was positive.
func topTier[T any](pool []T, rank int, count func(T) int, label func(T) string) ([]string, bool) {
	for tier := 1; ; tier++ {
		max := 0
		for _, item := range pool {
			if count(item) > max {
				max = count(item)
			}
		}
		if max == 0 {
			return nil, false
		}
		if tier == rank {
			var labels []string
			for _, item := range pool {
				if count(item) == max {
					labels = append(labels, label(item))
				}
			}
			sort.Strings(labels)
			return labels, true
		}
		pool = lo.Filter(pool, func(item T, _ int) bool {
			return count(item) < max
		})
	}
}

// AverageEventsPerDay returns the event count divided by the number of
// distinct calendar days the conference spans, 0 when either is zero.
func (e *Engine) AverageEventsPerDay() float64 {
	events := e.events.Events()
	days := schedule.DistinctDays(startTimes(events))
	if len(events) == 0 || days == 0 {
		return 0
	}
	return float64(len(events)) / float64(days)
}

// AverageAttendeesPerDay returns the total enrollment count divided by the
// number of distinct calendar days, 0 when either is zero.
func (e *Engine) AverageAttendeesPerDay() float64 {
	events := e.events.Events()
	attendees := 0
	for _, event := range events {
		attendees += event.AttendeeCount()
	}
	days := schedule.DistinctDays(startTimes(events))
	if attendees == 0 || days == 0 {
		return 0
	}
	return float64(attendees) / float64(days)
}

func startTimes(events []*conference.Event) []time.Time {
	return lo.Map(events, func(event *conference.Event, _ int) time.Time {
		return event.Start()
	})
}
