package conference

import (
	"sort"

	"github.com/example/conference-scheduler/internal/schedule"
)

// User is an account known to the engine. The password hash is opaque here;
// hashing and verification belong to the authentication collaborator.
// Speakers additionally carry a schedule mapping every event they are booked
// to speak at to its time window. That schedule is the authoritative source
// for speaker-availability checks and must be kept in sync with the talk and
// discussion speaker fields by every mutating operation.
type User struct {
	username   string
	password   string
	permission PermissionLevel
	enrolled   map[string]struct{}

	// schedule is non-nil only for accounts created as speakers.
	schedule map[string]schedule.Interval
}

// Username returns the unique account name.
func (u *User) Username() string { return u.username }

// PasswordHash returns the opaque stored credential.
func (u *User) PasswordHash() string { return u.password }

// Permission returns the account's access tier.
func (u *User) Permission() PermissionLevel { return u.permission }

// IsSpeaker reports whether the account was created as a speaker.
func (u *User) IsSpeaker() bool { return u.schedule != nil }

// EnrolledEventNames returns the events the user attends, sorted.
func (u *User) EnrolledEventNames() []string { return sortedKeys(u.enrolled) }

// IsEnrolled reports whether the user is signed up for the event.
func (u *User) IsEnrolled(eventName string) bool {
	_, ok := u.enrolled[eventName]
	return ok
}

// ScheduleEntry returns the booked window for an event this speaker speaks at.
func (u *User) ScheduleEntry(eventName string) (schedule.Interval, bool) {
	iv, ok := u.schedule[eventName]
	return iv, ok
}

// ScheduledEventNames returns the events the speaker is booked for, sorted.
func (u *User) ScheduledEventNames() []string {
	if len(u.schedule) == 0 {
		return nil
	}
	names := make([]string, 0, len(u.schedule))
	for name := range u.schedule {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScheduleConflicts reports whether any of the speaker's booked windows
// overlaps the candidate interval.
func (u *User) ScheduleConflicts(candidate schedule.Interval) bool {
	for _, booked := range u.schedule {
		if candidate.Overlaps(booked) {
			return true
		}
	}
	return false
}

func (u *User) enroll(eventName string)   { u.enrolled[eventName] = struct{}{} }
func (u *User) unenroll(eventName string) { delete(u.enrolled, eventName) }

func (u *User) assign(eventName string, window schedule.Interval) {
	u.schedule[eventName] = window
}

func (u *User) unassign(eventName string) { delete(u.schedule, eventName) }

func (u *User) setPassword(hash string) { u.password = hash }
