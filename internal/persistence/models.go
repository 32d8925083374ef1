package persistence

import "time"

// RoomRecord is the stored form of a room.
type RoomRecord struct {
	Code         string
	Capacity     int
	Board        string
	Seating      string
	Projector    bool
	Speakerphone bool
	Food         bool
}

// UserRecord is the stored form of an account. Enrollment is not recorded
// here; the event records carry the attendee lists.
type UserRecord struct {
	Username     string
	PasswordHash string
	Permission   string
	IsSpeaker    bool
}

// EventRecord is the stored form of a scheduled event, including its
// attendee and speaker lists.
type EventRecord struct {
	Name      string
	Type      string
	Start     time.Time
	RoomCode  string
	Capacity  int
	VIPOnly   bool
	Attendees []string
	Speakers  []string
}

// Snapshot is a full copy of the engine state taken at one instant.
type Snapshot struct {
	ID      string
	TakenAt time.Time
	Rooms   []RoomRecord
	Users   []UserRecord
	Events  []EventRecord
}
