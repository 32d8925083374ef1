package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/conference"
)

func sampleEvent(name string, start time.Time) application.EventView {
	return application.EventView{
		Name:      name,
		Type:      conference.TypeTalk,
		Start:     start,
		End:       start.Add(time.Hour),
		RoomCode:  "alpha",
		Capacity:  10,
		Attendees: []string{"ada", "bob"},
		Speakers:  []string{"ada"},
	}
}

func TestDailySchedule(t *testing.T) {
	monday := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	gala := sampleEvent("gala", monday.Add(18*time.Hour))
	gala.Type = conference.TypeParty
	gala.VIPOnly = true
	gala.Speakers = nil

	days := []application.ScheduleDay{
		{Date: monday, Events: []application.EventView{
			sampleEvent("standards talk", monday.Add(9*time.Hour)),
			gala,
		}},
		{Date: tuesday, Events: []application.EventView{
			sampleEvent("retrospective", tuesday.Add(10*time.Hour)),
		}},
	}

	var buf bytes.Buffer
	DailySchedule(&buf, days)
	out := buf.String()

	for _, want := range []string{
		"Monday, 9 June 2025",
		"Tuesday, 10 June 2025",
		"standards talk",
		"gala (VIP)",
		"retrospective",
		"09:00", "10:00", "18:00", "19:00",
		"2/10",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if mon, tue := strings.Index(out, "Monday"), strings.Index(out, "Tuesday"); mon > tue {
		t.Fatalf("days out of order:\n%s", out)
	}
}

func TestDailyScheduleEmpty(t *testing.T) {
	var buf bytes.Buffer
	DailySchedule(&buf, nil)
	if got := buf.String(); got != "No events scheduled.\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestUserSchedule(t *testing.T) {
	start := time.Date(2025, time.June, 9, 11, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	UserSchedule(&buf, "ada", []application.EventView{sampleEvent("keynote", start)})
	out := buf.String()

	for _, want := range []string{"Schedule for ada", "keynote", "11:00", "12:00", "alpha"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUserScheduleEmpty(t *testing.T) {
	var buf bytes.Buffer
	UserSchedule(&buf, "bob", nil)
	out := buf.String()

	if !strings.Contains(out, "Schedule for bob") || !strings.Contains(out, "No enrolled events.") {
		t.Fatalf("output = %q", out)
	}
}

func TestStatistics(t *testing.T) {
	summary := application.StatisticsSummary{
		MostPopularTypes:    []conference.EventType{conference.TypeTalk, conference.TypeParty},
		MostPopularCount:    3,
		FillPercentages:     []string{"keynote : 50% full", "gala : 100% full"},
		TopEvents:           [3][]string{{"keynote"}, {"gala"}, nil},
		TopRooms:            [3][]string{{"alpha", "beta"}, nil, nil},
		AverageEventsPerDay: 1.5,
		AverageAttendees:    4,
	}

	var buf bytes.Buffer
	Statistics(&buf, summary)
	out := buf.String()

	for _, want := range []string{
		"Most popular event type",
		"talk, party (3 events)",
		"Average events per day",
		"1.50",
		"4.00",
		"Top events by attendance",
		"Top rooms by usage",
		"alpha, beta",
		"Fill levels",
		"keynote : 50% full",
		"gala : 100% full",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatisticsEmpty(t *testing.T) {
	var buf bytes.Buffer
	Statistics(&buf, application.StatisticsSummary{})
	out := buf.String()

	if !strings.Contains(out, "none") {
		t.Fatalf("output missing empty popular-type marker:\n%s", out)
	}
	if strings.Contains(out, "Fill levels") {
		t.Fatalf("empty summary should omit fill levels:\n%s", out)
	}
	if strings.Count(out, "-") < 6 {
		t.Fatalf("expected placeholder rows for empty ranks:\n%s", out)
	}
}
