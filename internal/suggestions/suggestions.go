// Package suggestions implements the room-suggestion search: find rooms that
// are free for a candidate window, optionally narrowed to rooms whose feature
// set matches a requested one exactly.
package suggestions

import (
	"github.com/samber/lo"

	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/schedule"
)

// Availability is the slice of the validator the search needs.
type Availability interface {
	RoomAvailable(roomCode string, window schedule.Interval) bool
}

// Finder searches the room inventory for suggestion candidates.
type Finder struct {
	rooms        *conference.RoomRegistry
	availability Availability
}

// NewFinder wires a finder over the room inventory and an availability check.
func NewFinder(rooms *conference.RoomRegistry, availability Availability) *Finder {
	return &Finder{rooms: rooms, availability: availability}
}

// AvailableRooms returns every room free for the window, ordered by code.
func (f *Finder) AvailableRooms(window schedule.Interval) []*conference.Room {
	return lo.Filter(f.rooms.Rooms(), func(room *conference.Room, _ int) bool {
		return f.availability.RoomAvailable(room.Code(), window)
	})
}

// AvailableRoomsWithFeatures returns the rooms free for the window whose
// feature set matches wanted exactly. A room with extras a requester did not
// ask for is not a match.
func (f *Finder) AvailableRoomsWithFeatures(window schedule.Interval, wanted conference.Features) []*conference.Room {
	return lo.Filter(f.AvailableRooms(window), func(room *conference.Room, _ int) bool {
		return room.Features() == wanted
	})
}

// Codes projects suggestion results down to room codes.
func Codes(rooms []*conference.Room) []string {
	return lo.Map(rooms, func(room *conference.Room, _ int) string {
		return room.Code()
	})
}
