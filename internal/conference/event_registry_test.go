package conference

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

var eventStart = time.Date(2025, time.June, 9, 10, 0, 0, 0, time.UTC)

func newTestRooms(t *testing.T, code string, capacity int) *RoomRegistry {
	t.Helper()
	rooms := NewRoomRegistry()
	if _, err := rooms.Create(NewRoomBuilder().Code(code).Capacity(capacity)); err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return rooms
}

func TestEventRegistryCreate(t *testing.T) {
	registry := NewEventRegistry()

	party, err := registry.Create(NewPartyBuilder().Name("mixer").StartTime(eventStart).RoomCode("hall").Capacity(10))
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if party.Type() != TypeParty || party.Name() != "mixer" {
		t.Fatalf("unexpected event: %s %s", party.Type(), party.Name())
	}
	if got := party.End(); !got.Equal(eventStart.Add(time.Hour)) {
		t.Fatalf("expected derived end one hour after start, got %v", got)
	}

	if _, err := registry.Create(NewTalkBuilder().Name("keynote").StartTime(eventStart).RoomCode("hall").Capacity(10).Speaker("ada")); err != nil {
		t.Fatalf("create talk returned error: %v", err)
	}
	if _, err := registry.Create(NewDiscussionBuilder().Name("panel").StartTime(eventStart).RoomCode("hall").Capacity(10).Speakers("ada", "grace")); err != nil {
		t.Fatalf("create discussion returned error: %v", err)
	}

	if got := registry.Names(); !reflect.DeepEqual(got, []string{"keynote", "mixer", "panel"}) {
		t.Fatalf("unexpected names: %v", got)
	}
	if got := registry.CountByType(); got[TypeParty] != 1 || got[TypeTalk] != 1 || got[TypeDiscussion] != 1 {
		t.Fatalf("unexpected counts: %v", got)
	}
}

func TestEventRegistryNameUniqueSpansVariants(t *testing.T) {
	registry := NewEventRegistry()

	if _, err := registry.Create(NewPartyBuilder().Name("opening").StartTime(eventStart)); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	// The same name in a different sub-registry must still collide.
	_, err := registry.Create(NewTalkBuilder().Name("opening").StartTime(eventStart.Add(2 * time.Hour)).Speaker("ada"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestEventRegistryRemove(t *testing.T) {
	registry := NewEventRegistry()
	if _, err := registry.Create(NewPartyBuilder().Name("mixer").StartTime(eventStart)); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if err := registry.Remove("mixer"); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if registry.Exists("mixer") {
		t.Fatalf("event still present after removal")
	}
	if err := registry.Remove("mixer"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRegistryEnrollRoomCapacityGuard(t *testing.T) {
	registry := NewEventRegistry()
	rooms := newTestRooms(t, "small", 2)

	// Event capacity exceeds the room capacity; the room is the backstop.
	if _, err := registry.Create(NewPartyBuilder().Name("mixer").StartTime(eventStart).RoomCode("small").Capacity(10)); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	for _, username := range []string{"ann", "bob"} {
		if err := registry.Enroll(username, "mixer", rooms); err != nil {
			t.Fatalf("enroll %s returned error: %v", username, err)
		}
	}

	// The guard declines silently once the room is at capacity.
	if err := registry.Enroll("cee", "mixer", rooms); err != nil {
		t.Fatalf("enroll past room capacity returned error: %v", err)
	}
	if got := registry.AttendeesOf("mixer"); !reflect.DeepEqual(got, []string{"ann", "bob"}) {
		t.Fatalf("unexpected attendees: %v", got)
	}
}

func TestEventRegistryEnrollUnknownEvent(t *testing.T) {
	registry := NewEventRegistry()
	rooms := newTestRooms(t, "hall", 10)

	if err := registry.Enroll("ann", "ghost", rooms); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRegistryUnenroll(t *testing.T) {
	registry := NewEventRegistry()
	rooms := newTestRooms(t, "hall", 10)
	if _, err := registry.Create(NewPartyBuilder().Name("mixer").StartTime(eventStart).RoomCode("hall").Capacity(5)); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if err := registry.Enroll("ann", "mixer", rooms); err != nil {
		t.Fatalf("enroll returned error: %v", err)
	}

	if err := registry.Unenroll("ann", "mixer"); err != nil {
		t.Fatalf("unenroll returned error: %v", err)
	}
	if got := registry.AttendeesOf("mixer"); len(got) != 0 {
		t.Fatalf("unexpected attendees: %v", got)
	}
}

func TestEventRegistryIsFull(t *testing.T) {
	registry := NewEventRegistry()
	rooms := newTestRooms(t, "hall", 10)
	if _, err := registry.Create(NewPartyBuilder().Name("mixer").StartTime(eventStart).RoomCode("hall").Capacity(1)); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if registry.IsFull("mixer") {
		t.Fatalf("empty event should not be full")
	}
	if err := registry.Enroll("ann", "mixer", rooms); err != nil {
		t.Fatalf("enroll returned error: %v", err)
	}
	if !registry.IsFull("mixer") {
		t.Fatalf("event at capacity should be full")
	}

	// Unknown events read as full so enrollment paths refuse them.
	if !registry.IsFull("ghost") {
		t.Fatalf("unknown event should read as full")
	}
}

func TestEventRegistrySpeakerMutations(t *testing.T) {
	registry := NewEventRegistry()
	if _, err := registry.Create(NewTalkBuilder().Name("keynote").StartTime(eventStart).Speaker("ada")); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if _, err := registry.Create(NewDiscussionBuilder().Name("panel").StartTime(eventStart.Add(2 * time.Hour)).Speakers("ada")); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if err := registry.SetTalkSpeaker("keynote", "grace"); err != nil {
		t.Fatalf("set talk speaker returned error: %v", err)
	}
	if got := registry.SpeakersAt("keynote"); !reflect.DeepEqual(got, []string{"grace"}) {
		t.Fatalf("unexpected talk speakers: %v", got)
	}

	if err := registry.AddDiscussionSpeaker("panel", "grace"); err != nil {
		t.Fatalf("add discussion speaker returned error: %v", err)
	}
	if got := registry.SpeakersAt("panel"); !reflect.DeepEqual(got, []string{"ada", "grace"}) {
		t.Fatalf("unexpected discussion speakers: %v", got)
	}
	if err := registry.RemoveDiscussionSpeaker("panel", "ada"); err != nil {
		t.Fatalf("remove discussion speaker returned error: %v", err)
	}
	if got := registry.SpeakersAt("panel"); !reflect.DeepEqual(got, []string{"grace"}) {
		t.Fatalf("unexpected discussion speakers: %v", got)
	}
}

func TestEventRegistrySpeakerMutationsWrongVariant(t *testing.T) {
	registry := NewEventRegistry()
	if _, err := registry.Create(NewPartyBuilder().Name("mixer").StartTime(eventStart)); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if err := registry.SetTalkSpeaker("mixer", "ada"); !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected ErrWrongType, got %v", err)
	}
	if err := registry.AddDiscussionSpeaker("mixer", "ada"); !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected ErrWrongType, got %v", err)
	}
	if err := registry.SetTalkSpeaker("ghost", "ada"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRegistryTimeOf(t *testing.T) {
	registry := NewEventRegistry()
	if _, err := registry.Create(NewPartyBuilder().Name("mixer").StartTime(eventStart)); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	got, ok := registry.TimeOf("mixer")
	if !ok || !got.Equal(eventStart) {
		t.Fatalf("unexpected time: %v %v", got, ok)
	}
	if _, ok := registry.TimeOf("ghost"); ok {
		t.Fatalf("unknown event should not resolve")
	}
}
