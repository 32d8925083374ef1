package conference

import (
	"sort"
	"time"

	"github.com/example/conference-scheduler/internal/schedule"
)

// Event is a time-boxed conference entry scheduled into a room. The variant
// tag decides the speaker arity; every other field is shared. Events always
// last exactly one hour, so the end time is derived rather than stored.
type Event struct {
	typ       EventType
	name      string
	start     time.Time
	roomCode  string
	capacity  int
	vipOnly   bool
	attendees map[string]struct{}

	// speaker holds the single talk speaker; speakers holds the discussion
	// speaker set. Only the field matching the tag is ever populated.
	speaker  string
	speakers map[string]struct{}
}

// Type returns the variant tag.
func (e *Event) Type() EventType { return e.typ }

// Name returns the globally unique event name.
func (e *Event) Name() string { return e.name }

// Start returns the scheduled start time.
func (e *Event) Start() time.Time { return e.start }

// End returns the derived end time, one hour after the start.
func (e *Event) End() time.Time { return e.start.Add(schedule.EventDuration) }

// Interval returns the half-open window occupied by the event.
func (e *Event) Interval() schedule.Interval { return schedule.EventInterval(e.start) }

// RoomCode returns the code of the room the event is held in. The relation is
// a weak reference: the room itself lives in the RoomRegistry.
func (e *Event) RoomCode() string { return e.roomCode }

// Capacity returns the maximum number of attendees.
func (e *Event) Capacity() int { return e.capacity }

// VIPOnly reports whether plain attendees are barred from enrolling.
func (e *Event) VIPOnly() bool { return e.vipOnly }

// Attendees returns the enrolled usernames in sorted order.
func (e *Event) Attendees() []string { return sortedKeys(e.attendees) }

// AttendeeCount returns the number of enrolled usernames.
func (e *Event) AttendeeCount() int { return len(e.attendees) }

// HasAttendee reports whether the username is enrolled.
func (e *Event) HasAttendee(username string) bool {
	_, ok := e.attendees[username]
	return ok
}

// SpeakerUsername returns the talk speaker. It is empty for other variants.
func (e *Event) SpeakerUsername() string { return e.speaker }

// SpeakerUsernames returns every speaker booked for the event: none for a
// party, the single talk speaker, or the discussion speaker set in sorted
// order.
func (e *Event) SpeakerUsernames() []string {
	switch e.typ {
	case TypeTalk:
		if e.speaker == "" {
			return nil
		}
		return []string{e.speaker}
	case TypeDiscussion:
		return sortedKeys(e.speakers)
	}
	return nil
}

func (e *Event) addAttendee(username string)    { e.attendees[username] = struct{}{} }
func (e *Event) removeAttendee(username string) { delete(e.attendees, username) }

func (e *Event) setCapacity(capacity int) { e.capacity = capacity }

func (e *Event) setSpeaker(username string) { e.speaker = username }

func (e *Event) addSpeaker(username string) { e.speakers[username] = struct{}{} }

func (e *Event) removeSpeaker(username string) { delete(e.speakers, username) }

func (e *Event) hasSpeaker(username string) bool {
	if e.typ == TypeTalk {
		return e.speaker == username
	}
	_, ok := e.speakers[username]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
