package application

import (
	"time"

	"github.com/example/conference-scheduler/internal/conference"
)

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	Username   string
	Permission conference.PermissionLevel
}

// IsOrganizer reports whether the principal may run organizer operations.
func (p Principal) IsOrganizer() bool {
	return p.Permission == conference.PermissionOrganizer
}

// PartyInput captures caller provided fields for a speakerless event.
type PartyInput struct {
	Name     string
	Start    time.Time
	RoomCode string
	Capacity int
	VIPOnly  bool
}

// TalkInput captures caller provided fields for a single-speaker event.
type TalkInput struct {
	Name     string
	Start    time.Time
	RoomCode string
	Capacity int
	VIPOnly  bool
	Speaker  string
}

// DiscussionInput captures caller provided fields for a multi-speaker event.
type DiscussionInput struct {
	Name     string
	Start    time.Time
	RoomCode string
	Capacity int
	VIPOnly  bool
	Speakers []string
}

// EventView is the read model returned for a scheduled event.
type EventView struct {
	Name      string
	Type      conference.EventType
	Start     time.Time
	End       time.Time
	RoomCode  string
	Capacity  int
	VIPOnly   bool
	Attendees []string
	Speakers  []string
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Code         string
	Capacity     int
	Board        conference.BoardType
	Seating      conference.SeatingType
	Projector    bool
	Speakerphone bool
	Food         bool
}

// RoomView is the read model returned for a room.
type RoomView struct {
	Code         string
	Capacity     int
	Board        conference.BoardType
	Seating      conference.SeatingType
	Projector    bool
	Speakerphone bool
	Food         bool
	HostedEvents []string
}

// RoomSuggestion is the outcome of a suggestion search. ExactMatch reports
// whether the listed rooms satisfy the requested feature set exactly; when no
// exact match exists the search falls back to every available room.
type RoomSuggestion struct {
	RoomCodes  []string
	ExactMatch bool
}

// SuggestRoomsParams wraps the data required to search for available rooms.
type SuggestRoomsParams struct {
	Principal Principal
	Start     time.Time
	Features  *conference.Features
}

// UserInput captures caller provided account attributes.
type UserInput struct {
	Username   string
	Password   string
	Permission conference.PermissionLevel
}

// UserView is the read model returned for a registered user.
type UserView struct {
	Username       string
	Permission     conference.PermissionLevel
	EnrolledEvents []string
}

// ScheduleDay is one calendar-day bucket of the chronological schedule.
type ScheduleDay struct {
	Date   time.Time
	Events []EventView
}

// StatisticsSummary bundles the aggregate queries shown to organizers.
type StatisticsSummary struct {
	MostPopularTypes    []conference.EventType
	MostPopularCount    int
	FillPercentages     []string
	TopEvents           [3][]string
	TopRooms            [3][]string
	AverageEventsPerDay float64
	AverageAttendees    float64
}

// CredentialsResult captures the outcome of a successful authentication.
type CredentialsResult struct {
	Token     string
	ExpiresAt time.Time
	Principal Principal
}
