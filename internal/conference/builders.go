package conference

import (
	"time"

	"github.com/example/conference-scheduler/internal/schedule"
)

// EventBuilder accumulates the fields of one event before it is committed to
// the EventRegistry in a single step. Builders start from the domain defaults
// (capacity 2, not VIP-only) and the variant tag is fixed at construction.
type EventBuilder struct {
	typ      EventType
	name     string
	start    time.Time
	roomCode string
	capacity int
	vipOnly  bool
	speaker  string
	speakers []string
}

func newEventBuilder(typ EventType) *EventBuilder {
	return &EventBuilder{typ: typ, capacity: 2}
}

// NewPartyBuilder starts a speakerless event.
func NewPartyBuilder() *EventBuilder { return newEventBuilder(TypeParty) }

// NewTalkBuilder starts an event with exactly one speaker.
func NewTalkBuilder() *EventBuilder { return newEventBuilder(TypeTalk) }

// NewDiscussionBuilder starts an event with a speaker set.
func NewDiscussionBuilder() *EventBuilder { return newEventBuilder(TypeDiscussion) }

// Type returns the variant tag fixed at construction.
func (b *EventBuilder) Type() EventType { return b.typ }

// Name sets the unique event name.
func (b *EventBuilder) Name(name string) *EventBuilder {
	b.name = name
	return b
}

// StartTime sets the start of the one-hour window.
func (b *EventBuilder) StartTime(start time.Time) *EventBuilder {
	b.start = start
	return b
}

// RoomCode sets the hosting room reference.
func (b *EventBuilder) RoomCode(code string) *EventBuilder {
	b.roomCode = code
	return b
}

// Capacity sets the maximum attendee count.
func (b *EventBuilder) Capacity(capacity int) *EventBuilder {
	b.capacity = capacity
	return b
}

// VIPOnly marks the event as closed to plain attendees.
func (b *EventBuilder) VIPOnly(vipOnly bool) *EventBuilder {
	b.vipOnly = vipOnly
	return b
}

// Speaker sets the single talk speaker. Ignored for other variants.
func (b *EventBuilder) Speaker(username string) *EventBuilder {
	b.speaker = username
	return b
}

// Speakers adds to the discussion speaker set. Ignored for other variants.
func (b *EventBuilder) Speakers(usernames ...string) *EventBuilder {
	b.speakers = append(b.speakers, usernames...)
	return b
}

func (b *EventBuilder) build() *Event {
	event := &Event{
		typ:       b.typ,
		name:      b.name,
		start:     b.start,
		roomCode:  b.roomCode,
		capacity:  b.capacity,
		vipOnly:   b.vipOnly,
		attendees: make(map[string]struct{}),
	}
	switch b.typ {
	case TypeTalk:
		event.speaker = b.speaker
	case TypeDiscussion:
		event.speakers = make(map[string]struct{}, len(b.speakers))
		for _, username := range b.speakers {
			event.speakers[username] = struct{}{}
		}
	}
	return event
}

// RoomBuilder accumulates the fields of one room. Defaults: capacity 2, no
// board, auditorium seating, no extras.
type RoomBuilder struct {
	code     string
	capacity int
	features Features
}

// NewRoomBuilder starts a room from the domain defaults.
func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		capacity: 2,
		features: Features{Board: BoardNone, Seating: SeatingAuditorium},
	}
}

// Code sets the unique, immutable room code.
func (b *RoomBuilder) Code(code string) *RoomBuilder {
	b.code = code
	return b
}

// Capacity sets the room capacity.
func (b *RoomBuilder) Capacity(capacity int) *RoomBuilder {
	b.capacity = capacity
	return b
}

// Board sets the installed board type.
func (b *RoomBuilder) Board(board BoardType) *RoomBuilder {
	b.features.Board = board
	return b
}

// Seating sets the seating arrangement.
func (b *RoomBuilder) Seating(seating SeatingType) *RoomBuilder {
	b.features.Seating = seating
	return b
}

// Projector sets whether the room has a projector.
func (b *RoomBuilder) Projector(has bool) *RoomBuilder {
	b.features.Projector = has
	return b
}

// Speakerphone sets whether the room has a shared speakerphone.
func (b *RoomBuilder) Speakerphone(has bool) *RoomBuilder {
	b.features.Speakerphone = has
	return b
}

// Food sets whether food can be delivered to the room.
func (b *RoomBuilder) Food(can bool) *RoomBuilder {
	b.features.Food = can
	return b
}

func (b *RoomBuilder) build() *Room {
	return &Room{
		code:     b.code,
		capacity: b.capacity,
		features: b.features,
		hosted:   make(map[string]struct{}),
	}
}

// UserBuilder accumulates the fields of one account. Defaults to the plain
// attendee tier. Accounts committed through CreateSpeaker are forced to the
// speaker tier and receive an empty schedule.
type UserBuilder struct {
	username   string
	password   string
	permission PermissionLevel
}

// NewUserBuilder starts an account from the domain defaults.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{permission: PermissionAttendee}
}

// Username sets the unique account name.
func (b *UserBuilder) Username(username string) *UserBuilder {
	b.username = username
	return b
}

// PasswordHash sets the opaque stored credential.
func (b *UserBuilder) PasswordHash(hash string) *UserBuilder {
	b.password = hash
	return b
}

// Permission sets the account's access tier.
func (b *UserBuilder) Permission(level PermissionLevel) *UserBuilder {
	b.permission = level
	return b
}

func (b *UserBuilder) build() *User {
	return &User{
		username:   b.username,
		password:   b.password,
		permission: b.permission,
		enrolled:   make(map[string]struct{}),
	}
}

func (b *UserBuilder) buildSpeaker() *User {
	user := b.build()
	user.permission = PermissionSpeaker
	user.schedule = make(map[string]schedule.Interval)
	return user
}
