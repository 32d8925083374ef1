package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/persistence"
)

var (
	accountCounter uint64
	roomCounter    uint64
	eventCounter   uint64
)

// Monday of a conference week. Event fixtures spread out hour by hour from
// here so they never collide unless a test asks them to.
var referenceTime = time.Date(2025, time.June, 9, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Account fixtures ---------------------------

// AccountFixture represents a deterministic user account that can be
// materialised for application or persistence tests.
type AccountFixture struct {
	Username     string
	Password     string
	PasswordHash string
	Permission   conference.PermissionLevel
}

// AccountOption configures the generated account fixture.
type AccountOption func(*AccountFixture)

// NewAccountFixture returns a deterministic account fixture with optional overrides.
func NewAccountFixture(opts ...AccountOption) AccountFixture {
	idx := atomic.AddUint64(&accountCounter, 1)
	username := fmt.Sprintf("user-%03d", idx)
	fixture := AccountFixture{
		Username:     username,
		Password:     fmt.Sprintf("pw-%03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		Permission:   conference.PermissionAttendee,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUsername overrides the generated username.
func WithUsername(username string) AccountOption {
	return func(f *AccountFixture) {
		f.Username = username
	}
}

// WithPassword overrides the generated plaintext password.
func WithPassword(password string) AccountOption {
	return func(f *AccountFixture) {
		f.Password = password
	}
}

// WithPasswordHash overrides the generated stored hash.
func WithPasswordHash(hash string) AccountOption {
	return func(f *AccountFixture) {
		f.PasswordHash = hash
	}
}

// WithPermission sets the account's access tier.
func WithPermission(level conference.PermissionLevel) AccountOption {
	return func(f *AccountFixture) {
		f.Permission = level
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f AccountFixture) Principal() application.Principal {
	return application.Principal{Username: f.Username, Permission: f.Permission}
}

// Input returns the fixture as an application.UserInput.
func (f AccountFixture) Input() application.UserInput {
	return application.UserInput{
		Username:   f.Username,
		Password:   f.Password,
		Permission: f.Permission,
	}
}

// Record returns the fixture as a persistence.UserRecord.
func (f AccountFixture) Record() persistence.UserRecord {
	return persistence.UserRecord{
		Username:     f.Username,
		PasswordHash: f.PasswordHash,
		Permission:   string(f.Permission),
		IsSpeaker:    f.Permission == conference.PermissionSpeaker,
	}
}

// ----------------------------- Room fixtures ------------------------------

// RoomFixture represents a deterministic room record.
type RoomFixture struct {
	Code         string
	Capacity     int
	Board        conference.BoardType
	Seating      conference.SeatingType
	Projector    bool
	Speakerphone bool
	Food         bool
}

// RoomOption configures the generated room fixture.
type RoomOption func(*RoomFixture)

// NewRoomFixture returns a deterministic room fixture with optional overrides.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	idx := atomic.AddUint64(&roomCounter, 1)
	fixture := RoomFixture{
		Code:     fmt.Sprintf("room-%03d", idx),
		Capacity: int(10 + idx%20),
		Board:    conference.BoardNone,
		Seating:  conference.SeatingAuditorium,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomCode overrides the generated room code.
func WithRoomCode(code string) RoomOption {
	return func(f *RoomFixture) {
		f.Code = code
	}
}

// WithRoomCapacity overrides the generated capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(f *RoomFixture) {
		f.Capacity = capacity
	}
}

// WithRoomFeatures sets the full feature set on the fixture.
func WithRoomFeatures(features conference.Features) RoomOption {
	return func(f *RoomFixture) {
		f.Board = features.Board
		f.Seating = features.Seating
		f.Projector = features.Projector
		f.Speakerphone = features.Speakerphone
		f.Food = features.Food
	}
}

// Features returns the fixture's feature set.
func (f RoomFixture) Features() conference.Features {
	return conference.Features{
		Board:        f.Board,
		Seating:      f.Seating,
		Projector:    f.Projector,
		Speakerphone: f.Speakerphone,
		Food:         f.Food,
	}
}

// Input returns the fixture as an application.RoomInput.
func (f RoomFixture) Input() application.RoomInput {
	return application.RoomInput{
		Code:         f.Code,
		Capacity:     f.Capacity,
		Board:        f.Board,
		Seating:      f.Seating,
		Projector:    f.Projector,
		Speakerphone: f.Speakerphone,
		Food:         f.Food,
	}
}

// Record returns the fixture as a persistence.RoomRecord.
func (f RoomFixture) Record() persistence.RoomRecord {
	return persistence.RoomRecord{
		Code:         f.Code,
		Capacity:     f.Capacity,
		Board:        string(f.Board),
		Seating:      string(f.Seating),
		Projector:    f.Projector,
		Speakerphone: f.Speakerphone,
		Food:         f.Food,
	}
}

// ----------------------------- Event fixtures -----------------------------

// EventFixture represents a deterministic event record.
type EventFixture struct {
	Name      string
	Type      conference.EventType
	Start     time.Time
	RoomCode  string
	Capacity  int
	VIPOnly   bool
	Attendees []string
	Speakers  []string
}

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic party fixture with optional overrides.
// Each fixture starts one hour after the previous one.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	fixture := EventFixture{
		Name:     fmt.Sprintf("event-%03d", idx),
		Type:     conference.TypeParty,
		Start:    referenceTime.Add(time.Duration(idx) * time.Hour),
		RoomCode: fmt.Sprintf("room-%03d", idx),
		Capacity: 5,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventName overrides the generated event name.
func WithEventName(name string) EventOption {
	return func(f *EventFixture) {
		f.Name = name
	}
}

// WithEventType sets the event variant.
func WithEventType(typ conference.EventType) EventOption {
	return func(f *EventFixture) {
		f.Type = typ
	}
}

// WithEventStart sets the start of the one-hour window.
func WithEventStart(start time.Time) EventOption {
	return func(f *EventFixture) {
		f.Start = start
	}
}

// WithEventRoom sets the hosting room code.
func WithEventRoom(code string) EventOption {
	return func(f *EventFixture) {
		f.RoomCode = code
	}
}

// WithEventCapacity overrides the attendee limit.
func WithEventCapacity(capacity int) EventOption {
	return func(f *EventFixture) {
		f.Capacity = capacity
	}
}

// WithEventVIPOnly marks the event as closed to plain attendees.
func WithEventVIPOnly(vipOnly bool) EventOption {
	return func(f *EventFixture) {
		f.VIPOnly = vipOnly
	}
}

// WithEventAttendees sets the enrolled usernames.
func WithEventAttendees(usernames ...string) EventOption {
	return func(f *EventFixture) {
		f.Attendees = append([]string(nil), usernames...)
	}
}

// WithEventSpeakers sets the booked speakers. Talks use the first entry.
func WithEventSpeakers(usernames ...string) EventOption {
	return func(f *EventFixture) {
		f.Speakers = append([]string(nil), usernames...)
	}
}

// PartyInput returns the fixture as an application.PartyInput.
func (f EventFixture) PartyInput() application.PartyInput {
	return application.PartyInput{
		Name:     f.Name,
		Start:    f.Start,
		RoomCode: f.RoomCode,
		Capacity: f.Capacity,
		VIPOnly:  f.VIPOnly,
	}
}

// TalkInput returns the fixture as an application.TalkInput using the first speaker.
func (f EventFixture) TalkInput() application.TalkInput {
	var speaker string
	if len(f.Speakers) > 0 {
		speaker = f.Speakers[0]
	}
	return application.TalkInput{
		Name:     f.Name,
		Start:    f.Start,
		RoomCode: f.RoomCode,
		Capacity: f.Capacity,
		VIPOnly:  f.VIPOnly,
		Speaker:  speaker,
	}
}

// DiscussionInput returns the fixture as an application.DiscussionInput.
func (f EventFixture) DiscussionInput() application.DiscussionInput {
	return application.DiscussionInput{
		Name:     f.Name,
		Start:    f.Start,
		RoomCode: f.RoomCode,
		Capacity: f.Capacity,
		VIPOnly:  f.VIPOnly,
		Speakers: append([]string(nil), f.Speakers...),
	}
}

// Record returns the fixture as a persistence.EventRecord.
func (f EventFixture) Record() persistence.EventRecord {
	return persistence.EventRecord{
		Name:      f.Name,
		Type:      string(f.Type),
		Start:     f.Start,
		RoomCode:  f.RoomCode,
		Capacity:  f.Capacity,
		VIPOnly:   f.VIPOnly,
		Attendees: append([]string(nil), f.Attendees...),
		Speakers:  append([]string(nil), f.Speakers...),
	}
}

// NewSnapshotFixture assembles a persistence.Snapshot from fixture records.
func NewSnapshotFixture(id string, takenAt time.Time, rooms []RoomFixture, users []AccountFixture, events []EventFixture) persistence.Snapshot {
	snapshot := persistence.Snapshot{ID: id, TakenAt: takenAt}
	for _, room := range rooms {
		snapshot.Rooms = append(snapshot.Rooms, room.Record())
	}
	for _, user := range users {
		snapshot.Users = append(snapshot.Users, user.Record())
	}
	for _, event := range events {
		snapshot.Events = append(snapshot.Events, event.Record())
	}
	return snapshot
}
