package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/schedule"
)

// CreatePartyParams wraps the data required to schedule a speakerless event.
type CreatePartyParams struct {
	Principal Principal
	Input     PartyInput
}

// CreateTalkParams wraps the data required to schedule a single-speaker event.
type CreateTalkParams struct {
	Principal Principal
	Input     TalkInput
}

// CreateDiscussionParams wraps the data required to schedule a multi-speaker event.
type CreateDiscussionParams struct {
	Principal Principal
	Input     DiscussionInput
}

// EventService orchestrates validation and registry mutation for events.
// Every operation takes the state lock around its validate-then-commit
// sequence, so a check and the mutation it guards see the same state.
type EventService struct {
	state  *State
	logger *slog.Logger
}

// NewEventService wires an event service over the shared state.
func NewEventService(state *State) *EventService {
	return NewEventServiceWithLogger(state, nil)
}

// NewEventServiceWithLogger wires an event service with a specified logger.
func NewEventServiceWithLogger(state *State, logger *slog.Logger) *EventService {
	return &EventService{state: state, logger: defaultLogger(logger)}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// CreateParty schedules a speakerless event for an organizer.
func (s *EventService) CreateParty(ctx context.Context, params CreatePartyParams) (view EventView, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateParty",
		"principal", params.Principal.Username,
		"event", params.Input.Name,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create party", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "party created", "room", view.RoomCode)
	}()

	input := params.Input
	if !params.Principal.IsOrganizer() {
		err = ErrUnauthorized
		return
	}

	s.state.Write(func() {
		view, err = s.createEvent(conference.NewPartyBuilder().
			Name(strings.TrimSpace(input.Name)).
			StartTime(input.Start).
			RoomCode(input.RoomCode).
			Capacity(input.Capacity).
			VIPOnly(input.VIPOnly),
			strings.TrimSpace(input.Name), input.Start, input.RoomCode, input.Capacity, nil)
	})
	return
}

// CreateTalk schedules a single-speaker event for an organizer.
func (s *EventService) CreateTalk(ctx context.Context, params CreateTalkParams) (view EventView, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateTalk",
		"principal", params.Principal.Username,
		"event", params.Input.Name,
		"speaker", params.Input.Speaker,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create talk", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "talk created", "room", view.RoomCode)
	}()

	input := params.Input
	if !params.Principal.IsOrganizer() {
		err = ErrUnauthorized
		return
	}
	speaker := strings.TrimSpace(input.Speaker)
	if speaker == "" {
		vErr := &ValidationError{}
		vErr.add("speaker", "speaker is required")
		err = vErr
		return
	}

	s.state.Write(func() {
		view, err = s.createEvent(conference.NewTalkBuilder().
			Name(strings.TrimSpace(input.Name)).
			StartTime(input.Start).
			RoomCode(input.RoomCode).
			Capacity(input.Capacity).
			VIPOnly(input.VIPOnly).
			Speaker(speaker),
			strings.TrimSpace(input.Name), input.Start, input.RoomCode, input.Capacity, []string{speaker})
	})
	return
}

// CreateDiscussion schedules a multi-speaker event for an organizer.
func (s *EventService) CreateDiscussion(ctx context.Context, params CreateDiscussionParams) (view EventView, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateDiscussion",
		"principal", params.Principal.Username,
		"event", params.Input.Name,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create discussion", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "discussion created", "room", view.RoomCode)
	}()

	input := params.Input
	if !params.Principal.IsOrganizer() {
		err = ErrUnauthorized
		return
	}
	speakers := uniqueStrings(input.Speakers)
	if len(speakers) == 0 {
		vErr := &ValidationError{}
		vErr.add("speakers", "at least one speaker is required")
		err = vErr
		return
	}

	s.state.Write(func() {
		view, err = s.createEvent(conference.NewDiscussionBuilder().
			Name(strings.TrimSpace(input.Name)).
			StartTime(input.Start).
			RoomCode(input.RoomCode).
			Capacity(input.Capacity).
			VIPOnly(input.VIPOnly).
			Speakers(speakers...),
			strings.TrimSpace(input.Name), input.Start, input.RoomCode, input.Capacity, speakers)
	})
	return
}

// createEvent runs the shared constraint checks and commits the event plus
// its room and speaker back-references. Callers hold the write lock.
func (s *EventService) createEvent(builder *conference.EventBuilder, name string, start time.Time, roomCode string, capacity int, speakers []string) (EventView, error) {
	vErr := &ValidationError{}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if start.IsZero() {
		vErr.add("start", "start is required")
	}
	if capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	if !s.state.rooms.Exists(roomCode) {
		vErr.add("room_code", "room does not exist")
	}
	for _, username := range speakers {
		if !s.state.users.HasSpeaker(username) {
			vErr.add("speakers", fmt.Sprintf("unknown speaker: %s", username))
		}
	}
	if vErr.HasErrors() {
		return EventView{}, vErr
	}

	if !s.state.validator.NameAvailable(name) {
		return EventView{}, fmt.Errorf("event %q: %w", name, ErrAlreadyExists)
	}
	if !s.state.validator.CapacityLegal(capacity, roomCode) {
		vErr.add("capacity", "capacity exceeds room capacity")
		return EventView{}, vErr
	}

	window := schedule.EventInterval(start)
	if !s.state.validator.RoomAvailable(roomCode, window) {
		return EventView{}, fmt.Errorf("room %q is booked: %w", roomCode, ErrConflict)
	}
	for _, username := range speakers {
		if !s.state.validator.SpeakerAvailable(username, window) {
			return EventView{}, fmt.Errorf("speaker %q is booked: %w", username, ErrConflict)
		}
	}

	event, err := s.state.events.Create(builder)
	if err != nil {
		return EventView{}, mapRegistryError(err)
	}
	if err := s.state.rooms.AddHostedEvent(roomCode, name); err != nil {
		return EventView{}, mapRegistryError(err)
	}
	for _, username := range speakers {
		if err := s.state.users.AssignSpeakerToEvent(username, name, window); err != nil {
			return EventView{}, mapRegistryError(err)
		}
	}

	return eventView(event), nil
}

// RemoveEvent cancels an event and clears every back-reference it left in
// the room and user registries. The cascade runs under one write lock so it
// is observed all-or-nothing.
func (s *EventService) RemoveEvent(ctx context.Context, principal Principal, name string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if !principal.IsOrganizer() {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "RemoveEvent",
		"principal", principal.Username,
		"event", name,
	)

	var err error
	s.state.Write(func() {
		var event *conference.Event
		event, err = s.state.events.Get(name)
		if err != nil {
			err = mapRegistryError(err)
			return
		}

		for _, username := range event.Attendees() {
			s.state.users.Unenroll(username, name)
		}
		for _, username := range event.SpeakerUsernames() {
			s.state.users.UnassignSpeakerFromEvent(username, name)
		}
		s.state.rooms.RemoveHostedEvent(event.RoomCode(), name)
		err = mapRegistryError(s.state.events.Remove(name))
	})

	if err != nil {
		logger.ErrorContext(ctx, "failed to remove event", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "event removed")
	return nil
}

// Enroll signs the principal up for an event. VIP-only events refuse plain
// attendees; full events refuse everyone.
func (s *EventService) Enroll(ctx context.Context, principal Principal, eventName string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}

	logger := s.loggerWith(ctx, "Enroll",
		"principal", principal.Username,
		"event", eventName,
	)

	var err error
	s.state.Write(func() {
		if !s.state.users.Exists(principal.Username) {
			err = fmt.Errorf("user %q: %w", principal.Username, ErrNotFound)
			return
		}
		var event *conference.Event
		event, err = s.state.events.Get(eventName)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		if event.HasAttendee(principal.Username) {
			err = fmt.Errorf("already enrolled: %w", ErrAlreadyExists)
			return
		}
		if event.VIPOnly() && principal.Permission == conference.PermissionAttendee {
			err = fmt.Errorf("event is VIP only: %w", ErrUnauthorized)
			return
		}
		if s.state.events.IsFull(eventName) {
			err = fmt.Errorf("event %q: %w", eventName, ErrCapacityExceeded)
			return
		}

		if err = s.state.events.Enroll(principal.Username, eventName, s.state.rooms); err != nil {
			err = mapRegistryError(err)
			return
		}
		// The registry's room-capacity guard can decline without an error.
		// Only record the enrollment on the user when it actually landed.
		if event.HasAttendee(principal.Username) {
			s.state.users.Enroll(principal.Username, eventName)
		}
	})

	if err != nil {
		logger.ErrorContext(ctx, "failed to enroll", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "enrolled")
	return nil
}

// Unenroll removes the principal from an event's attendee list.
func (s *EventService) Unenroll(ctx context.Context, principal Principal, eventName string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}

	logger := s.loggerWith(ctx, "Unenroll",
		"principal", principal.Username,
		"event", eventName,
	)

	var err error
	s.state.Write(func() {
		var event *conference.Event
		event, err = s.state.events.Get(eventName)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		if !event.HasAttendee(principal.Username) {
			err = fmt.Errorf("not enrolled: %w", ErrNotFound)
			return
		}
		s.state.events.Unenroll(principal.Username, eventName)
		s.state.users.Unenroll(principal.Username, eventName)
	})

	if err != nil {
		logger.ErrorContext(ctx, "failed to unenroll", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "unenrolled")
	return nil
}

// ChangeCapacity resizes an event for an organizer. The new capacity must
// stay within the hosting room and cover everyone already enrolled.
func (s *EventService) ChangeCapacity(ctx context.Context, principal Principal, eventName string, newCapacity int) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if !principal.IsOrganizer() {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "ChangeCapacity",
		"principal", principal.Username,
		"event", eventName,
		"capacity", newCapacity,
	)

	var err error
	s.state.Write(func() {
		var event *conference.Event
		event, err = s.state.events.Get(eventName)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		if !s.state.validator.CanChangeCapacity(eventName, newCapacity) {
			// Rerun the individual checks only to shape the error.
			if !s.state.validator.CapacityLegal(newCapacity, event.RoomCode()) {
				vErr := &ValidationError{}
				vErr.add("capacity", "capacity must be positive and within the room capacity")
				err = vErr
				return
			}
			err = fmt.Errorf("capacity below current enrollment: %w", ErrConflict)
			return
		}
		err = mapRegistryError(s.state.events.ChangeCapacity(eventName, newCapacity))
	})

	if err != nil {
		logger.ErrorContext(ctx, "failed to change capacity", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "capacity changed")
	return nil
}

// AssignSpeakerToTalk replaces the speaker of a talk. The incoming speaker's
// availability is checked before the current speaker is released, so a
// speaker cannot be reassigned onto their own slot.
func (s *EventService) AssignSpeakerToTalk(ctx context.Context, principal Principal, talkName, username string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if !principal.IsOrganizer() {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "AssignSpeakerToTalk",
		"principal", principal.Username,
		"event", talkName,
		"speaker", username,
	)

	var err error
	s.state.Write(func() {
		var event *conference.Event
		event, err = s.state.events.Get(talkName)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		if event.Type() != conference.TypeTalk {
			vErr := &ValidationError{}
			vErr.add("event", "event is not a talk")
			err = vErr
			return
		}
		if !s.state.users.HasSpeaker(username) {
			vErr := &ValidationError{}
			vErr.add("speaker", "speaker does not exist")
			err = vErr
			return
		}

		window := event.Interval()
		if !s.state.validator.SpeakerAvailable(username, window) {
			err = fmt.Errorf("speaker %q is booked: %w", username, ErrConflict)
			return
		}

		if previous := event.SpeakerUsername(); previous != "" {
			s.state.users.UnassignSpeakerFromEvent(previous, talkName)
		}
		if err = s.state.events.SetTalkSpeaker(talkName, username); err != nil {
			err = mapRegistryError(err)
			return
		}
		err = mapRegistryError(s.state.users.AssignSpeakerToEvent(username, talkName, window))
	})

	if err != nil {
		logger.ErrorContext(ctx, "failed to assign speaker", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "speaker assigned")
	return nil
}

// AddSpeakerToDiscussion books an additional speaker onto a discussion.
func (s *EventService) AddSpeakerToDiscussion(ctx context.Context, principal Principal, discussionName, username string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if !principal.IsOrganizer() {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "AddSpeakerToDiscussion",
		"principal", principal.Username,
		"event", discussionName,
		"speaker", username,
	)

	var err error
	s.state.Write(func() {
		var event *conference.Event
		event, err = s.state.events.Get(discussionName)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		if event.Type() != conference.TypeDiscussion {
			vErr := &ValidationError{}
			vErr.add("event", "event is not a discussion")
			err = vErr
			return
		}
		if !s.state.users.HasSpeaker(username) {
			vErr := &ValidationError{}
			vErr.add("speaker", "speaker does not exist")
			err = vErr
			return
		}
		if !s.state.validator.SpeakerAvailable(username, event.Interval()) {
			err = fmt.Errorf("speaker %q is booked: %w", username, ErrConflict)
			return
		}

		if err = s.state.events.AddDiscussionSpeaker(discussionName, username); err != nil {
			err = mapRegistryError(err)
			return
		}
		err = mapRegistryError(s.state.users.AssignSpeakerToEvent(username, discussionName, event.Interval()))
	})

	if err != nil {
		logger.ErrorContext(ctx, "failed to add speaker", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "speaker added")
	return nil
}

// RemoveSpeakerFromDiscussion releases a speaker from a discussion.
func (s *EventService) RemoveSpeakerFromDiscussion(ctx context.Context, principal Principal, discussionName, username string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if !principal.IsOrganizer() {
		return ErrUnauthorized
	}

	logger := s.loggerWith(ctx, "RemoveSpeakerFromDiscussion",
		"principal", principal.Username,
		"event", discussionName,
		"speaker", username,
	)

	var err error
	s.state.Write(func() {
		var event *conference.Event
		event, err = s.state.events.Get(discussionName)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		if event.Type() != conference.TypeDiscussion {
			vErr := &ValidationError{}
			vErr.add("event", "event is not a discussion")
			err = vErr
			return
		}
		if err = s.state.events.RemoveDiscussionSpeaker(discussionName, username); err != nil {
			err = mapRegistryError(err)
			return
		}
		s.state.users.UnassignSpeakerFromEvent(username, discussionName)
	})

	if err != nil {
		logger.ErrorContext(ctx, "failed to remove speaker", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "speaker removed")
	return nil
}

// GetEvent returns the read model for the named event.
func (s *EventService) GetEvent(ctx context.Context, name string) (EventView, error) {
	if s == nil {
		return EventView{}, fmt.Errorf("EventService is nil")
	}

	var view EventView
	var err error
	s.state.Read(func() {
		var event *conference.Event
		event, err = s.state.events.Get(name)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		view = eventView(event)
	})
	return view, err
}

// ListEvents returns every scheduled event, ordered by name.
func (s *EventService) ListEvents(ctx context.Context) []EventView {
	if s == nil {
		return nil
	}

	var views []EventView
	s.state.Read(func() {
		for _, event := range s.state.events.Events() {
			views = append(views, eventView(event))
		}
	})
	return views
}

// DailySchedule groups every event into chronological calendar-day buckets.
func (s *EventService) DailySchedule(ctx context.Context) []ScheduleDay {
	if s == nil {
		return nil
	}

	var days []ScheduleDay
	s.state.Read(func() {
		for _, bucket := range schedule.GroupByCalendarDay(s.state.events.Names(), s.state.events) {
			day := ScheduleDay{}
			for _, name := range bucket {
				event, err := s.state.events.Get(name)
				if err != nil {
					continue
				}
				if day.Events == nil {
					day.Date = event.Start()
				}
				day.Events = append(day.Events, eventView(event))
			}
			if day.Events != nil {
				days = append(days, day)
			}
		}
	})
	return days
}

// UserSchedule returns the user's enrolled events in chronological order.
func (s *EventService) UserSchedule(ctx context.Context, username string) ([]EventView, error) {
	if s == nil {
		return nil, fmt.Errorf("EventService is nil")
	}

	var views []EventView
	var err error
	s.state.Read(func() {
		var enrolled []string
		enrolled, err = s.state.users.EnrolledEvents(username)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		for _, name := range schedule.Chronological(enrolled, s.state.events) {
			event, getErr := s.state.events.Get(name)
			if getErr != nil {
				continue
			}
			views = append(views, eventView(event))
		}
	})
	return views, err
}

func eventView(event *conference.Event) EventView {
	return EventView{
		Name:      event.Name(),
		Type:      event.Type(),
		Start:     event.Start(),
		End:       event.End(),
		RoomCode:  event.RoomCode(),
		Capacity:  event.Capacity(),
		VIPOnly:   event.VIPOnly(),
		Attendees: event.Attendees(),
		Speakers:  event.SpeakerUsernames(),
	}
}

// uniqueStrings trims each value and drops blanks and duplicates, keeping
// the first-seen order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
