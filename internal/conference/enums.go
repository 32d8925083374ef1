package conference

import "fmt"

// EventType tags the closed set of event variants. The tag decides how many
// speakers an event carries: none for a party, exactly one for a talk, any
// number for a discussion.
type EventType string

const (
	TypeParty      EventType = "party"
	TypeTalk       EventType = "talk"
	TypeDiscussion EventType = "discussion"
)

// ParseEventType maps a stored label back to an EventType.
func ParseEventType(value string) (EventType, error) {
	switch EventType(value) {
	case TypeParty, TypeTalk, TypeDiscussion:
		return EventType(value), nil
	}
	return "", fmt.Errorf("unknown event type %q", value)
}

// BoardType identifies the writing board installed in a room.
type BoardType string

const (
	BoardSmart BoardType = "smart_board"
	BoardWhite BoardType = "white_board"
	BoardChalk BoardType = "chalk_board"
	BoardNone  BoardType = "none"
)

// ParseBoardType maps a stored label back to a BoardType.
func ParseBoardType(value string) (BoardType, error) {
	switch BoardType(value) {
	case BoardSmart, BoardWhite, BoardChalk, BoardNone:
		return BoardType(value), nil
	}
	return "", fmt.Errorf("unknown board type %q", value)
}

// SeatingType identifies the seating arrangement of a room.
type SeatingType string

const (
	SeatingAuditorium   SeatingType = "auditorium"
	SeatingBanquet      SeatingType = "banquet"
	SeatingHollowSquare SeatingType = "hollow_square"
)

// ParseSeatingType maps a stored label back to a SeatingType.
func ParseSeatingType(value string) (SeatingType, error) {
	switch SeatingType(value) {
	case SeatingAuditorium, SeatingBanquet, SeatingHollowSquare:
		return SeatingType(value), nil
	}
	return "", fmt.Errorf("unknown seating type %q", value)
}

// PermissionLevel tags an account with its access tier. The engine does not
// authenticate; it only records the tier so that callers can gate operations.
type PermissionLevel string

const (
	PermissionAttendee  PermissionLevel = "attendee"
	PermissionVIP       PermissionLevel = "vip"
	PermissionSpeaker   PermissionLevel = "speaker"
	PermissionOrganizer PermissionLevel = "organizer"
)

// ParsePermissionLevel maps a stored label back to a PermissionLevel.
func ParsePermissionLevel(value string) (PermissionLevel, error) {
	switch PermissionLevel(value) {
	case PermissionAttendee, PermissionVIP, PermissionSpeaker, PermissionOrganizer:
		return PermissionLevel(value), nil
	}
	return "", fmt.Errorf("unknown permission level %q", value)
}
