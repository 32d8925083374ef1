package conference

import (
	"fmt"
	"sort"

	"github.com/example/conference-scheduler/internal/schedule"
)

// UserRegistry owns every account, keyed by username. Speakers are held in
// their own set alongside the non-speaker accounts, mirroring the two-tier
// lookup the rest of the engine relies on.
type UserRegistry struct {
	nonSpeakers map[string]*User
	speakers    map[string]*User
}

// NewUserRegistry returns an empty registry.
func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		nonSpeakers: make(map[string]*User),
		speakers:    make(map[string]*User),
	}
}

// CreateUser commits a non-speaker account. The username must be unused.
func (r *UserRegistry) CreateUser(builder *UserBuilder) (*User, error) {
	user := builder.build()
	if r.Exists(user.username) {
		return nil, fmt.Errorf("user %q: %w", user.username, ErrDuplicate)
	}
	r.nonSpeakers[user.username] = user
	return user, nil
}

// CreateSpeaker commits a speaker account with an empty schedule. The
// permission level is forced to the speaker tier regardless of the builder.
func (r *UserRegistry) CreateSpeaker(builder *UserBuilder) (*User, error) {
	user := builder.buildSpeaker()
	if r.Exists(user.username) {
		return nil, fmt.Errorf("user %q: %w", user.username, ErrDuplicate)
	}
	r.speakers[user.username] = user
	return user, nil
}

// Get returns the account with the given username, speaker or not.
func (r *UserRegistry) Get(username string) (*User, error) {
	if user, ok := r.speakers[username]; ok {
		return user, nil
	}
	if user, ok := r.nonSpeakers[username]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

// GetSpeaker returns the speaker account with the given username.
func (r *UserRegistry) GetSpeaker(username string) (*User, error) {
	if user, ok := r.speakers[username]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("speaker %q: %w", username, ErrNotFound)
}

// Exists reports whether any account uses the username.
func (r *UserRegistry) Exists(username string) bool {
	_, speaker := r.speakers[username]
	_, nonSpeaker := r.nonSpeakers[username]
	return speaker || nonSpeaker
}

// HasSpeaker reports whether a speaker account uses the username.
func (r *UserRegistry) HasSpeaker(username string) bool {
	_, ok := r.speakers[username]
	return ok
}

// Usernames returns every account name, sorted.
func (r *UserRegistry) Usernames() []string {
	names := make([]string, 0, len(r.nonSpeakers)+len(r.speakers))
	for name := range r.nonSpeakers {
		names = append(names, name)
	}
	for name := range r.speakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SpeakerUsernames returns every speaker account name, sorted.
func (r *UserRegistry) SpeakerUsernames() []string {
	names := make([]string, 0, len(r.speakers))
	for name := range r.speakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Remove deletes the account with the given username.
func (r *UserRegistry) Remove(username string) error {
	if _, ok := r.speakers[username]; ok {
		delete(r.speakers, username)
		return nil
	}
	if _, ok := r.nonSpeakers[username]; ok {
		delete(r.nonSpeakers, username)
		return nil
	}
	return fmt.Errorf("user %q: %w", username, ErrNotFound)
}

// PermissionOf returns the account's access tier.
func (r *UserRegistry) PermissionOf(username string) (PermissionLevel, error) {
	user, err := r.Get(username)
	if err != nil {
		return "", err
	}
	return user.Permission(), nil
}

// Enroll records the event in the user's enrolled set. It does not touch the
// event's attendee list; the EventRegistry owns that side.
func (r *UserRegistry) Enroll(username, eventName string) error {
	user, err := r.Get(username)
	if err != nil {
		return err
	}
	user.enroll(eventName)
	return nil
}

// Unenroll drops the event from the user's enrolled set.
func (r *UserRegistry) Unenroll(username, eventName string) error {
	user, err := r.Get(username)
	if err != nil {
		return err
	}
	user.unenroll(eventName)
	return nil
}

// EnrolledEvents returns the events the user is signed up for, sorted.
func (r *UserRegistry) EnrolledEvents(username string) ([]string, error) {
	user, err := r.Get(username)
	if err != nil {
		return nil, err
	}
	return user.EnrolledEventNames(), nil
}

// AssignSpeakerToEvent books the speaker for the event's window. The caller
// is responsible for having checked availability first.
func (r *UserRegistry) AssignSpeakerToEvent(username, eventName string, window schedule.Interval) error {
	speaker, err := r.GetSpeaker(username)
	if err != nil {
		return err
	}
	speaker.assign(eventName, window)
	return nil
}

// UnassignSpeakerFromEvent releases the speaker's booking for the event.
func (r *UserRegistry) UnassignSpeakerFromEvent(username, eventName string) error {
	speaker, err := r.GetSpeaker(username)
	if err != nil {
		return err
	}
	speaker.unassign(eventName)
	return nil
}

// SpeakerAvailable reports whether the speaker has no booking overlapping the
// candidate window. A username that does not belong to a speaker is reported
// unavailable.
func (r *UserRegistry) SpeakerAvailable(username string, window schedule.Interval) bool {
	speaker, ok := r.speakers[username]
	if !ok {
		return false
	}
	return !speaker.ScheduleConflicts(window)
}

// AvailableSpeakers returns every speaker free for the candidate window,
// sorted.
func (r *UserRegistry) AvailableSpeakers(window schedule.Interval) []string {
	var free []string
	for username, speaker := range r.speakers {
		if !speaker.ScheduleConflicts(window) {
			free = append(free, username)
		}
	}
	sort.Strings(free)
	return free
}
