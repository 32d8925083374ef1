package suggestions

import (
	"reflect"
	"testing"
	"time"

	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/schedule"
	"github.com/example/conference-scheduler/internal/validator"
)

var start = time.Date(2025, time.June, 9, 10, 0, 0, 0, time.UTC)

func newFinder(t *testing.T) (*Finder, *conference.RoomRegistry, *conference.EventRegistry) {
	t.Helper()
	events := conference.NewEventRegistry()
	rooms := conference.NewRoomRegistry()
	users := conference.NewUserRegistry()
	return NewFinder(rooms, validator.New(events, rooms, users)), rooms, events
}

func addRoom(t *testing.T, rooms *conference.RoomRegistry, builder *conference.RoomBuilder) {
	t.Helper()
	if _, err := rooms.Create(builder); err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
}

func occupy(t *testing.T, rooms *conference.RoomRegistry, events *conference.EventRegistry, roomCode string, at time.Time) {
	t.Helper()
	name := "held " + roomCode
	if _, err := events.Create(conference.NewPartyBuilder().Name(name).StartTime(at).RoomCode(roomCode).Capacity(2)); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if err := rooms.AddHostedEvent(roomCode, name); err != nil {
		t.Fatalf("failed to register hosted event: %v", err)
	}
}

func TestAvailableRooms(t *testing.T) {
	finder, rooms, events := newFinder(t)
	addRoom(t, rooms, conference.NewRoomBuilder().Code("alpha").Capacity(10))
	addRoom(t, rooms, conference.NewRoomBuilder().Code("beta").Capacity(10))
	addRoom(t, rooms, conference.NewRoomBuilder().Code("gamma").Capacity(10))
	occupy(t, rooms, events, "beta", start)

	got := Codes(finder.AvailableRooms(schedule.EventInterval(start)))
	want := []string{"alpha", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AvailableRooms = %v, want %v", got, want)
	}

	later := Codes(finder.AvailableRooms(schedule.EventInterval(start.Add(time.Hour))))
	if !reflect.DeepEqual(later, []string{"alpha", "beta", "gamma"}) {
		t.Fatalf("touching window should free beta, got %v", later)
	}
}

func TestAvailableRoomsWithFeatures(t *testing.T) {
	finder, rooms, _ := newFinder(t)
	addRoom(t, rooms, conference.NewRoomBuilder().Code("plain").Capacity(10))
	addRoom(t, rooms, conference.NewRoomBuilder().Code("wired").Capacity(10).Projector(true).Speakerphone(true))
	addRoom(t, rooms, conference.NewRoomBuilder().Code("extra").Capacity(10).Projector(true).Speakerphone(true).Food(true))

	wanted := conference.Features{
		Board:        conference.BoardNone,
		Seating:      conference.SeatingAuditorium,
		Projector:    true,
		Speakerphone: true,
	}
	got := Codes(finder.AvailableRoomsWithFeatures(schedule.EventInterval(start), wanted))
	if !reflect.DeepEqual(got, []string{"wired"}) {
		t.Fatalf("exact feature match = %v, want [wired]", got)
	}
}

func TestAvailableRoomsEmptyInventory(t *testing.T) {
	finder, _, _ := newFinder(t)
	if got := finder.AvailableRooms(schedule.EventInterval(start)); len(got) != 0 {
		t.Fatalf("empty inventory should yield no rooms, got %d", len(got))
	}
}
