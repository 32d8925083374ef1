package conference

// Features is the fixed set of room attributes the suggestion search matches
// on. Matching is exact on every field; there is no scoring.
type Features struct {
	Board        BoardType
	Seating      SeatingType
	Projector    bool
	Speakerphone bool
	Food         bool
}

// Room is a physical conference room identified by its immutable code. The
// hosted-event set is the room-side half of the Event.RoomCode relation and
// must be maintained in lockstep by callers mutating either side.
type Room struct {
	code     string
	capacity int
	features Features
	hosted   map[string]struct{}
}

// Code returns the unique room code.
func (r *Room) Code() string { return r.code }

// Capacity returns the maximum number of people the room holds.
func (r *Room) Capacity() int { return r.capacity }

// Features returns the room's attribute set.
func (r *Room) Features() Features { return r.features }

// Board returns the installed board type.
func (r *Room) Board() BoardType { return r.features.Board }

// Seating returns the seating arrangement.
func (r *Room) Seating() SeatingType { return r.features.Seating }

// HasProjector reports whether the room has a projector.
func (r *Room) HasProjector() bool { return r.features.Projector }

// HasSpeakerphone reports whether the room has a shared speakerphone.
func (r *Room) HasSpeakerphone() bool { return r.features.Speakerphone }

// CanGetFood reports whether food can be delivered to the room.
func (r *Room) CanGetFood() bool { return r.features.Food }

// HostedEventNames returns the names of events scheduled in the room, sorted.
func (r *Room) HostedEventNames() []string { return sortedKeys(r.hosted) }

// HostedEventCount returns the number of events scheduled in the room.
func (r *Room) HostedEventCount() int { return len(r.hosted) }

func (r *Room) addHostedEvent(name string)    { r.hosted[name] = struct{}{} }
func (r *Room) removeHostedEvent(name string) { delete(r.hosted, name) }
