package conference

import (
	"fmt"
	"sort"
)

// RoomRegistry owns every Room instance, keyed by the immutable room code.
type RoomRegistry struct {
	rooms map[string]*Room
}

// NewRoomRegistry returns an empty registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room)}
}

// Create commits the built room. The room code must be unused.
func (r *RoomRegistry) Create(builder *RoomBuilder) (*Room, error) {
	room := builder.build()
	if _, taken := r.rooms[room.code]; taken {
		return nil, fmt.Errorf("room %q: %w", room.code, ErrDuplicate)
	}
	r.rooms[room.code] = room
	return room, nil
}

// Get returns the room with the given code.
func (r *RoomRegistry) Get(code string) (*Room, error) {
	room, ok := r.rooms[code]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", code, ErrNotFound)
	}
	return room, nil
}

// Exists reports whether a room with the code is registered.
func (r *RoomRegistry) Exists(code string) bool {
	_, ok := r.rooms[code]
	return ok
}

// Codes returns every registered room code, sorted.
func (r *RoomRegistry) Codes() []string {
	codes := make([]string, 0, len(r.rooms))
	for code := range r.rooms {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Rooms returns every registered room, ordered by code.
func (r *RoomRegistry) Rooms() []*Room {
	rooms := make([]*Room, 0, len(r.rooms))
	for _, code := range r.Codes() {
		rooms = append(rooms, r.rooms[code])
	}
	return rooms
}

// CapacityOf returns the capacity of the room with the given code.
func (r *RoomRegistry) CapacityOf(code string) (int, error) {
	room, err := r.Get(code)
	if err != nil {
		return 0, err
	}
	return room.Capacity(), nil
}

// HostedEvents returns the names of events scheduled in the room.
func (r *RoomRegistry) HostedEvents(code string) ([]string, error) {
	room, err := r.Get(code)
	if err != nil {
		return nil, err
	}
	return room.HostedEventNames(), nil
}

// AddHostedEvent records an event name in the room's hosted set. Callers must
// pair this with setting the event's room code.
func (r *RoomRegistry) AddHostedEvent(code, eventName string) error {
	room, err := r.Get(code)
	if err != nil {
		return err
	}
	room.addHostedEvent(eventName)
	return nil
}

// RemoveHostedEvent drops an event name from the room's hosted set.
func (r *RoomRegistry) RemoveHostedEvent(code, eventName string) error {
	room, err := r.Get(code)
	if err != nil {
		return err
	}
	room.removeHostedEvent(eventName)
	return nil
}
