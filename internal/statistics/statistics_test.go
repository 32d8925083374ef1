package statistics

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/example/conference-scheduler/internal/conference"
)

var monday = time.Date(2025, time.June, 9, 10, 0, 0, 0, time.UTC)

type world struct {
	events *conference.EventRegistry
	rooms  *conference.RoomRegistry
	engine *Engine
}

func newWorld(t *testing.T) *world {
	t.Helper()
	events := conference.NewEventRegistry()
	rooms := conference.NewRoomRegistry()
	return &world{events: events, rooms: rooms, engine: NewEngine(events, rooms)}
}

func (w *world) addRoom(t *testing.T, code string, capacity int) {
	t.Helper()
	if _, err := w.rooms.Create(conference.NewRoomBuilder().Code(code).Capacity(capacity)); err != nil {
		t.Fatalf("failed to create room %s: %v", code, err)
	}
}

func (w *world) addEvent(t *testing.T, builder *conference.EventBuilder, attendees ...string) {
	t.Helper()
	event, err := w.events.Create(builder)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if err := w.rooms.AddHostedEvent(event.RoomCode(), event.Name()); err != nil {
		t.Fatalf("failed to register hosted event: %v", err)
	}
	for _, username := range attendees {
		if err := w.events.Enroll(username, event.Name(), w.rooms); err != nil {
			t.Fatalf("failed to enroll %s: %v", username, err)
		}
	}
}

func TestMostPopularEventType(t *testing.T) {
	w := newWorld(t)
	w.addRoom(t, "hall", 20)

	if got := w.engine.MostPopularEventType(); got != nil {
		t.Fatalf("empty schedule should report no popular type, got %v", got)
	}
	if got := w.engine.MostPopularEventTypeCount(); got != 0 {
		t.Fatalf("empty schedule count = %d, want 0", got)
	}

	w.addEvent(t, conference.NewTalkBuilder().Name("t1").StartTime(monday).RoomCode("hall").Capacity(5).Speaker("ada"))
	w.addEvent(t, conference.NewTalkBuilder().Name("t2").StartTime(monday.Add(time.Hour)).RoomCode("hall").Capacity(5).Speaker("ada"))
	w.addEvent(t, conference.NewPartyBuilder().Name("p1").StartTime(monday.Add(2*time.Hour)).RoomCode("hall").Capacity(5))

	if got := w.engine.MostPopularEventType(); !reflect.DeepEqual(got, []conference.EventType{conference.TypeTalk}) {
		t.Fatalf("MostPopularEventType = %v, want [talk]", got)
	}
	if got := w.engine.MostPopularEventTypeCount(); got != 2 {
		t.Fatalf("MostPopularEventTypeCount = %d, want 2", got)
	}

	w.addEvent(t, conference.NewPartyBuilder().Name("p2").StartTime(monday.Add(3*time.Hour)).RoomCode("hall").Capacity(5))

	got := w.engine.MostPopularEventType()
	want := []conference.EventType{conference.TypeParty, conference.TypeTalk}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tied variants = %v, want %v", got, want)
	}
}

func TestFillPercentage(t *testing.T) {
	w := newWorld(t)
	w.addRoom(t, "hall", 20)
	w.addEvent(t, conference.NewPartyBuilder().Name("mixer").StartTime(monday).RoomCode("hall").Capacity(4), "ann", "bob", "cat")

	got, err := w.engine.FillPercentage("mixer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "75%" {
		t.Fatalf("FillPercentage = %q, want 75%%", got)
	}

	if _, err := w.engine.FillPercentage("ghost"); !errors.Is(err, conference.ErrNotFound) {
		t.Fatalf("unknown event error = %v, want ErrNotFound", err)
	}
}

func TestFillPercentages(t *testing.T) {
	w := newWorld(t)
	w.addRoom(t, "hall", 20)
	w.addEvent(t, conference.NewPartyBuilder().Name("empty").StartTime(monday).RoomCode("hall").Capacity(4))
	w.addEvent(t, conference.NewPartyBuilder().Name("half").StartTime(monday.Add(time.Hour)).RoomCode("hall").Capacity(4), "ann", "bob")

	got := w.engine.FillPercentages()
	want := []string{"empty : 0% full", "half : 50% full"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FillPercentages = %v, want %v", got, want)
	}
}

func TestTopEventsTieAwareRanks(t *testing.T) {
	w := newWorld(t)
	w.addRoom(t, "hall", 20)
	w.addEvent(t, conference.NewPartyBuilder().Name("big one").StartTime(monday).RoomCode("hall").Capacity(10), "a1", "a2", "a3", "a4", "a5")
	w.addEvent(t, conference.NewPartyBuilder().Name("big two").StartTime(monday.Add(time.Hour)).RoomCode("hall").Capacity(10), "a1", "a2", "a3", "a4", "a5")
	w.addEvent(t, conference.NewPartyBuilder().Name("mid").StartTime(monday.Add(2*time.Hour)).RoomCode("hall").Capacity(10), "a1", "a2", "a3")
	w.addEvent(t, conference.NewPartyBuilder().Name("idle").StartTime(monday.Add(3*time.Hour)).RoomCode("hall").Capacity(10))

	if got := w.engine.TopEvents(1); !reflect.DeepEqual(got, []string{"big one", "big two"}) {
		t.Fatalf("rank 1 = %v, want tied pair", got)
	}
	if got := w.engine.TopEvents(2); !reflect.DeepEqual(got, []string{"mid"}) {
		t.Fatalf("rank 2 = %v, want [mid]", got)
	}
	if got := w.engine.TopEvents(3); got != nil {
		t.Fatalf("rank 3 should be empty once the maximum hits zero, got %v", got)
	}
}

func TestTopRooms(t *testing.T) {
	w := newWorld(t)
	w.addRoom(t, "busy", 20)
	w.addRoom(t, "quiet", 20)
	w.addRoom(t, "idle", 20)
	w.addEvent(t, conference.NewPartyBuilder().Name("e1").StartTime(monday).RoomCode("busy").Capacity(5))
	w.addEvent(t, conference.NewPartyBuilder().Name("e2").StartTime(monday.Add(time.Hour)).RoomCode("busy").Capacity(5))
	w.addEvent(t, conference.NewPartyBuilder().Name("e3").StartTime(monday.Add(2*time.Hour)).RoomCode("quiet").Capacity(5))

	if got := w.engine.TopRooms(1); !reflect.DeepEqual(got, []string{"busy"}) {
		t.Fatalf("rank 1 = %v, want [busy]", got)
	}
	if got := w.engine.TopRooms(2); !reflect.DeepEqual(got, []string{"quiet"}) {
		t.Fatalf("rank 2 = %v, want [quiet]", got)
	}
	if got := w.engine.TopRooms(3); got != nil {
		t.Fatalf("unused room should never rank, got %v", got)
	}
}

func TestAverages(t *testing.T) {
	w := newWorld(t)
	w.addRoom(t, "hall", 20)

	if got := w.engine.AverageEventsPerDay(); got != 0 {
		t.Fatalf("empty schedule average = %v, want 0", got)
	}
	if got := w.engine.AverageAttendeesPerDay(); got != 0 {
		t.Fatalf("empty schedule attendee average = %v, want 0", got)
	}

	tuesday := monday.AddDate(0, 0, 1)
	w.addEvent(t, conference.NewPartyBuilder().Name("m1").StartTime(monday).RoomCode("hall").Capacity(10), "ann", "bob")
	w.addEvent(t, conference.NewPartyBuilder().Name("m2").StartTime(monday.Add(time.Hour)).RoomCode("hall").Capacity(10), "cat")
	w.addEvent(t, conference.NewPartyBuilder().Name("t1").StartTime(tuesday).RoomCode("hall").Capacity(10), "ann")

	if got := w.engine.AverageEventsPerDay(); got != 1.5 {
		t.Fatalf("AverageEventsPerDay = %v, want 1.5", got)
	}
	if got := w.engine.AverageAttendeesPerDay(); got != 2 {
		t.Fatalf("AverageAttendeesPerDay = %v, want 2", got)
	}
}
