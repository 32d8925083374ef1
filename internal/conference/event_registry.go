package conference

import (
	"fmt"
	"sort"
	"time"
)

// eventSet is one typed sub-registry holding a single event variant.
type eventSet struct {
	events map[string]*Event
}

func newEventSet() *eventSet {
	return &eventSet{events: make(map[string]*Event)}
}

func (s *eventSet) has(name string) bool {
	_, ok := s.events[name]
	return ok
}

func (s *eventSet) get(name string) *Event { return s.events[name] }

func (s *eventSet) add(event *Event) { s.events[event.name] = event }

func (s *eventSet) remove(name string) { delete(s.events, name) }

func (s *eventSet) names() []string {
	names := make([]string, 0, len(s.events))
	for name := range s.events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EventRegistry owns every event, split across three typed sub-registries for
// parties, talks, and discussions. Lookups by name span all three.
//
// The registry performs no constraint validation on create: callers are
// expected to have run the validator checks first. Mutation here is
// unconditional so that policy stays with the caller.
type EventRegistry struct {
	parties     *eventSet
	talks       *eventSet
	discussions *eventSet
}

// NewEventRegistry returns an empty registry.
func NewEventRegistry() *EventRegistry {
	return &EventRegistry{
		parties:     newEventSet(),
		talks:       newEventSet(),
		discussions: newEventSet(),
	}
}

func (r *EventRegistry) setFor(typ EventType) *eventSet {
	switch typ {
	case TypeParty:
		return r.parties
	case TypeTalk:
		return r.talks
	default:
		return r.discussions
	}
}

// Create commits the built event to the sub-registry matching its tag. The
// name must be unused across all three variants.
func (r *EventRegistry) Create(builder *EventBuilder) (*Event, error) {
	event := builder.build()
	if r.Exists(event.name) {
		return nil, fmt.Errorf("event %q: %w", event.name, ErrDuplicate)
	}
	r.setFor(event.typ).add(event)
	return event, nil
}

// Remove drops the event from its sub-registry. Back-references held by
// rooms, users, and speakers are the caller's responsibility; the application
// layer removes events through a cascade that clears all of them.
func (r *EventRegistry) Remove(name string) error {
	for _, set := range []*eventSet{r.parties, r.talks, r.discussions} {
		if set.has(name) {
			set.remove(name)
			return nil
		}
	}
	return fmt.Errorf("event %q: %w", name, ErrNotFound)
}

// Get returns the event with the given name, whatever its variant.
func (r *EventRegistry) Get(name string) (*Event, error) {
	for _, set := range []*eventSet{r.parties, r.talks, r.discussions} {
		if event := set.get(name); event != nil {
			return event, nil
		}
	}
	return nil, fmt.Errorf("event %q: %w", name, ErrNotFound)
}

// Exists reports whether any event uses the name.
func (r *EventRegistry) Exists(name string) bool {
	return r.parties.has(name) || r.talks.has(name) || r.discussions.has(name)
}

// TypeOf returns the variant tag of the named event.
func (r *EventRegistry) TypeOf(name string) (EventType, error) {
	event, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return event.typ, nil
}

// Names returns every event name across all variants, sorted.
func (r *EventRegistry) Names() []string {
	names := make([]string, 0, len(r.parties.events)+len(r.talks.events)+len(r.discussions.events))
	names = append(names, r.parties.names()...)
	names = append(names, r.talks.names()...)
	names = append(names, r.discussions.names()...)
	sort.Strings(names)
	return names
}

// PartyNames returns the names of all parties, sorted.
func (r *EventRegistry) PartyNames() []string { return r.parties.names() }

// TalkNames returns the names of all talks, sorted.
func (r *EventRegistry) TalkNames() []string { return r.talks.names() }

// DiscussionNames returns the names of all discussions, sorted.
func (r *EventRegistry) DiscussionNames() []string { return r.discussions.names() }

// Events returns every event across all variants, ordered by name.
func (r *EventRegistry) Events() []*Event {
	events := make([]*Event, 0, len(r.Names()))
	for _, name := range r.Names() {
		event, _ := r.Get(name)
		events = append(events, event)
	}
	return events
}

// CountByType returns how many events each variant holds.
func (r *EventRegistry) CountByType() map[EventType]int {
	return map[EventType]int{
		TypeParty:      len(r.parties.events),
		TypeTalk:       len(r.talks.events),
		TypeDiscussion: len(r.discussions.events),
	}
}

// TimeOf returns the start time of the named event. It satisfies the
// schedule.Times lookup used by the grouping transforms.
func (r *EventRegistry) TimeOf(name string) (time.Time, bool) {
	event, err := r.Get(name)
	if err != nil {
		return time.Time{}, false
	}
	return event.start, true
}

// RoomCodeOf returns the code of the room hosting the named event.
func (r *EventRegistry) RoomCodeOf(name string) (string, error) {
	event, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return event.roomCode, nil
}

// AttendeesOf returns the enrolled usernames of the named event. An unknown
// name yields an empty list.
func (r *EventRegistry) AttendeesOf(name string) []string {
	event, err := r.Get(name)
	if err != nil {
		return nil
	}
	return event.Attendees()
}

// SpeakersAt returns the speakers booked for the named event: none for a
// party or unknown name, the single talk speaker, or the discussion set.
func (r *EventRegistry) SpeakersAt(name string) []string {
	event, err := r.Get(name)
	if err != nil {
		return nil
	}
	return event.SpeakerUsernames()
}

// IsFull reports whether the event has reached its own capacity. An unknown
// name is reported full so that enrollment paths refuse it.
func (r *EventRegistry) IsFull(name string) bool {
	event, err := r.Get(name)
	if err != nil {
		return true
	}
	return event.AttendeeCount() >= event.capacity
}

// IsVIPOnly reports whether the named event is closed to plain attendees.
// An unknown name reports false.
func (r *EventRegistry) IsVIPOnly(name string) bool {
	event, err := r.Get(name)
	if err != nil {
		return false
	}
	return event.vipOnly
}

// Enroll adds the username to the event's attendee set. It carries a
// last-resort guard comparing the new attendee count against the ROOM
// capacity, not the event capacity; the event-capacity policy check (IsFull)
// belongs to the caller and uses a different threshold. When the guard
// declines, the set is left untouched and no error is reported.
func (r *EventRegistry) Enroll(username, eventName string, rooms *RoomRegistry) error {
	event, err := r.Get(eventName)
	if err != nil {
		return err
	}
	room, err := rooms.Get(event.roomCode)
	if err != nil {
		return err
	}
	if event.AttendeeCount()+1 <= room.Capacity() {
		event.addAttendee(username)
	}
	return nil
}

// Unenroll drops the username from the event's attendee set.
func (r *EventRegistry) Unenroll(username, eventName string) error {
	event, err := r.Get(eventName)
	if err != nil {
		return err
	}
	event.removeAttendee(username)
	return nil
}

// ChangeCapacity sets the event's capacity unconditionally. Legality against
// the room capacity and the current attendee count is a validator concern.
func (r *EventRegistry) ChangeCapacity(name string, newCapacity int) error {
	event, err := r.Get(name)
	if err != nil {
		return err
	}
	event.setCapacity(newCapacity)
	return nil
}

// SetTalkSpeaker replaces the single speaker of a talk.
func (r *EventRegistry) SetTalkSpeaker(talkName, username string) error {
	event := r.talks.get(talkName)
	if event == nil {
		if r.Exists(talkName) {
			return fmt.Errorf("event %q: %w", talkName, ErrWrongType)
		}
		return fmt.Errorf("talk %q: %w", talkName, ErrNotFound)
	}
	event.setSpeaker(username)
	return nil
}

// AddDiscussionSpeaker adds a speaker to a discussion's speaker set.
func (r *EventRegistry) AddDiscussionSpeaker(discussionName, username string) error {
	event := r.discussions.get(discussionName)
	if event == nil {
		if r.Exists(discussionName) {
			return fmt.Errorf("event %q: %w", discussionName, ErrWrongType)
		}
		return fmt.Errorf("discussion %q: %w", discussionName, ErrNotFound)
	}
	event.addSpeaker(username)
	return nil
}

// RemoveDiscussionSpeaker drops a speaker from a discussion's speaker set.
func (r *EventRegistry) RemoveDiscussionSpeaker(discussionName, username string) error {
	event := r.discussions.get(discussionName)
	if event == nil {
		if r.Exists(discussionName) {
			return fmt.Errorf("event %q: %w", discussionName, ErrWrongType)
		}
		return fmt.Errorf("discussion %q: %w", discussionName, ErrNotFound)
	}
	event.removeSpeaker(username)
	return nil
}
