package testfixtures

import (
	"context"
	"testing"

	"github.com/example/conference-scheduler/internal/conference"
)

func TestServiceHarnessSeedsThroughServices(t *testing.T) {
	harness := NewServiceHarness(t)

	room := NewRoomFixture(WithRoomCapacity(20))
	harness.MustCreateRoom(t, room)

	speaker := NewAccountFixture(WithPermission(conference.PermissionSpeaker))
	harness.MustCreateAccount(t, speaker)

	attendee := NewAccountFixture()
	harness.MustCreateAccount(t, attendee)

	talk := NewEventFixture(
		WithEventType(conference.TypeTalk),
		WithEventRoom(room.Code),
		WithEventSpeakers(speaker.Username),
	)
	view := harness.MustCreateTalk(t, talk)
	if view.Name != talk.Name {
		t.Fatalf("expected talk %q, got %q", talk.Name, view.Name)
	}

	harness.MustEnroll(t, attendee.Principal(), talk.Name)

	got, err := harness.Events.GetEvent(context.Background(), talk.Name)
	if err != nil {
		t.Fatalf("GetEvent returned error: %v", err)
	}
	if len(got.Attendees) != 1 || got.Attendees[0] != attendee.Username {
		t.Fatalf("unexpected attendees: %v", got.Attendees)
	}
}

func TestFixtureRecordsRoundTrip(t *testing.T) {
	room := NewRoomFixture(WithRoomCode("aurora"), WithRoomFeatures(conference.Features{
		Board:     conference.BoardWhite,
		Seating:   conference.SeatingBanquet,
		Projector: true,
	}))
	record := room.Record()
	if record.Code != "aurora" || record.Board != string(conference.BoardWhite) || !record.Projector {
		t.Fatalf("unexpected room record: %+v", record)
	}

	account := NewAccountFixture(WithPermission(conference.PermissionSpeaker))
	if !account.Record().IsSpeaker {
		t.Fatalf("expected speaker flag on record")
	}

	event := NewEventFixture(WithEventAttendees("ann", "bob"))
	if got := len(event.Record().Attendees); got != 2 {
		t.Fatalf("expected 2 attendees, got %d", got)
	}
}
