package testfixtures

import (
	"context"
	"testing"
	"time"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/conference"
)

// ServiceHarness wires the full service layer over one fresh state with a
// controllable clock, plus a ready-made organizer principal for gated calls.
type ServiceHarness struct {
	State      *application.State
	Events     *application.EventService
	Rooms      *application.RoomService
	Users      *application.UserService
	Statistics *application.StatisticsService
	Clock      *Clock
	Organizer  application.Principal
}

// NewServiceHarness builds a harness over an empty state.
func NewServiceHarness(tb testing.TB) *ServiceHarness {
	tb.Helper()

	state := application.NewState()
	clock := NewClock(time.Time{})
	return &ServiceHarness{
		State:      state,
		Events:     application.NewEventService(state),
		Rooms:      application.NewRoomService(state),
		Users:      application.NewUserService(state),
		Statistics: application.NewStatisticsServiceWithLogger(state, nil, 0, clock.NowFunc()),
		Clock:      clock,
		Organizer:  application.Principal{Username: "organizer", Permission: conference.PermissionOrganizer},
	}
}

// MustCreateRoom creates a room from the fixture and fails the test on error.
func (h *ServiceHarness) MustCreateRoom(tb testing.TB, fixture RoomFixture) application.RoomView {
	tb.Helper()

	view, err := h.Rooms.CreateRoom(context.Background(), application.CreateRoomParams{
		Principal: h.Organizer,
		Input:     fixture.Input(),
	})
	if err != nil {
		tb.Fatalf("failed to create room %s: %v", fixture.Code, err)
	}
	return view
}

// MustCreateAccount creates an account from the fixture and fails the test on error.
func (h *ServiceHarness) MustCreateAccount(tb testing.TB, fixture AccountFixture) application.UserView {
	tb.Helper()

	view, err := h.Users.CreateAccount(context.Background(), application.CreateAccountParams{
		Principal: h.Organizer,
		Input:     fixture.Input(),
	})
	if err != nil {
		tb.Fatalf("failed to create account %s: %v", fixture.Username, err)
	}
	return view
}

// MustCreateParty schedules a speakerless event and fails the test on error.
func (h *ServiceHarness) MustCreateParty(tb testing.TB, fixture EventFixture) application.EventView {
	tb.Helper()

	view, err := h.Events.CreateParty(context.Background(), application.CreatePartyParams{
		Principal: h.Organizer,
		Input:     fixture.PartyInput(),
	})
	if err != nil {
		tb.Fatalf("failed to create party %s: %v", fixture.Name, err)
	}
	return view
}

// MustCreateTalk schedules a single-speaker event and fails the test on error.
func (h *ServiceHarness) MustCreateTalk(tb testing.TB, fixture EventFixture) application.EventView {
	tb.Helper()

	view, err := h.Events.CreateTalk(context.Background(), application.CreateTalkParams{
		Principal: h.Organizer,
		Input:     fixture.TalkInput(),
	})
	if err != nil {
		tb.Fatalf("failed to create talk %s: %v", fixture.Name, err)
	}
	return view
}

// MustCreateDiscussion schedules a multi-speaker event and fails the test on error.
func (h *ServiceHarness) MustCreateDiscussion(tb testing.TB, fixture EventFixture) application.EventView {
	tb.Helper()

	view, err := h.Events.CreateDiscussion(context.Background(), application.CreateDiscussionParams{
		Principal: h.Organizer,
		Input:     fixture.DiscussionInput(),
	})
	if err != nil {
		tb.Fatalf("failed to create discussion %s: %v", fixture.Name, err)
	}
	return view
}

// MustEnroll enrolls a principal and fails the test on error.
func (h *ServiceHarness) MustEnroll(tb testing.TB, principal application.Principal, eventName string) {
	tb.Helper()

	if err := h.Events.Enroll(context.Background(), principal, eventName); err != nil {
		tb.Fatalf("failed to enroll %s in %s: %v", principal.Username, eventName, err)
	}
}
