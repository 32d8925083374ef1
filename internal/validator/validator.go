// Package validator holds the pre-mutation constraint checks for the
// scheduling engine. Registries commit unconditionally; every rule that can
// refuse a change lives here, so callers run the relevant checks and only
// then mutate.
package validator

import (
	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/schedule"
)

// Validator answers yes/no constraint questions against the current registry
// state. It never mutates anything.
type Validator struct {
	events *conference.EventRegistry
	rooms  *conference.RoomRegistry
	users  *conference.UserRegistry
}

// New wires a validator over the three registries.
func New(events *conference.EventRegistry, rooms *conference.RoomRegistry, users *conference.UserRegistry) *Validator {
	return &Validator{events: events, rooms: rooms, users: users}
}

// NameAvailable reports whether no event uses the name yet.
func (v *Validator) NameAvailable(name string) bool {
	return !v.events.Exists(name)
}

// CapacityLegal reports whether the capacity is positive and fits within the
// room. An unknown room makes no capacity legal.
func (v *Validator) CapacityLegal(capacity int, roomCode string) bool {
	if capacity <= 0 {
		return false
	}
	roomCapacity, err := v.rooms.CapacityOf(roomCode)
	if err != nil {
		return false
	}
	return capacity <= roomCapacity
}

// RoomAvailable reports whether the room hosts no event whose window overlaps
// the candidate window. An unknown room is unavailable.
func (v *Validator) RoomAvailable(roomCode string, window schedule.Interval) bool {
	hosted, err := v.rooms.HostedEvents(roomCode)
	if err != nil {
		return false
	}
	for _, name := range hosted {
		start, ok := v.events.TimeOf(name)
		if !ok {
			continue
		}
		if schedule.EventInterval(start).Overlaps(window) {
			return false
		}
	}
	return true
}

// SpeakerAvailable reports whether the speaker has no booking overlapping the
// candidate window. A username that is not a registered speaker is
// unavailable.
func (v *Validator) SpeakerAvailable(username string, window schedule.Interval) bool {
	return v.users.SpeakerAvailable(username, window)
}

// CanCreateSpeakerlessEvent bundles the checks for parties: unused name,
// legal capacity, free room.
func (v *Validator) CanCreateSpeakerlessEvent(name, roomCode string, capacity int, window schedule.Interval) bool {
	return v.NameAvailable(name) &&
		v.CapacityLegal(capacity, roomCode) &&
		v.RoomAvailable(roomCode, window)
}

// CanCreateSpeakerEvent bundles the checks for talks and discussions: the
// speakerless checks plus availability of every listed speaker.
func (v *Validator) CanCreateSpeakerEvent(name, roomCode string, capacity int, window schedule.Interval, speakers ...string) bool {
	if !v.CanCreateSpeakerlessEvent(name, roomCode, capacity, window) {
		return false
	}
	for _, username := range speakers {
		if !v.users.SpeakerAvailable(username, window) {
			return false
		}
	}
	return true
}

// CanChangeCapacity reports whether the event's capacity may become
// newCapacity: it must stay legal for the hosting room and cover everyone
// already enrolled.
func (v *Validator) CanChangeCapacity(eventName string, newCapacity int) bool {
	roomCode, err := v.events.RoomCodeOf(eventName)
	if err != nil {
		return false
	}
	if !v.CapacityLegal(newCapacity, roomCode) {
		return false
	}
	return newCapacity >= len(v.events.AttendeesOf(eventName))
}
