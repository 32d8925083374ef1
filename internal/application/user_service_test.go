package application_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/testfixtures"
)

func TestUserService_Register(t *testing.T) {
	t.Run("creates a plain attendee", func(t *testing.T) {
		h := testfixtures.NewServiceHarness(t)

		view, err := h.Users.Register(context.Background(), application.RegisterParams{
			Username: "newcomer",
			Password: "secret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Permission != conference.PermissionAttendee {
			t.Fatalf("permission = %v, want attendee", view.Permission)
		}
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		h := testfixtures.NewServiceHarness(t)
		account := testfixtures.NewAccountFixture()
		h.MustCreateAccount(t, account)

		_, err := h.Users.Register(context.Background(), application.RegisterParams{
			Username: account.Username,
			Password: "secret",
		})
		if !errors.Is(err, application.ErrAlreadyExists) {
			t.Fatalf("error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("collects field errors", func(t *testing.T) {
		h := testfixtures.NewServiceHarness(t)

		_, err := h.Users.Register(context.Background(), application.RegisterParams{Username: "  "})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
		for _, field := range []string{"username", "password"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("missing field error for %q in %v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestUserService_CreateAccount(t *testing.T) {
	t.Run("requires an organizer", func(t *testing.T) {
		h := testfixtures.NewServiceHarness(t)

		_, err := h.Users.CreateAccount(context.Background(), application.CreateAccountParams{
			Principal: testfixtures.NewAccountFixture().Principal(),
			Input:     testfixtures.NewAccountFixture().Input(),
		})
		if !errors.Is(err, application.ErrUnauthorized) {
			t.Fatalf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("speaker accounts join the speaker directory", func(t *testing.T) {
		h := testfixtures.NewServiceHarness(t)
		speaker := testfixtures.NewAccountFixture(testfixtures.WithPermission(conference.PermissionSpeaker))
		h.MustCreateAccount(t, speaker)

		available, err := h.Users.AvailableSpeakers(context.Background(), h.Organizer, testfixtures.ReferenceTime())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(available, []string{speaker.Username}) {
			t.Fatalf("available = %v, want the new speaker", available)
		}
	})
}

func TestUserService_GetAndList(t *testing.T) {
	h := testfixtures.NewServiceHarness(t)
	first := testfixtures.NewAccountFixture()
	second := testfixtures.NewAccountFixture()
	h.MustCreateAccount(t, first)
	h.MustCreateAccount(t, second)

	view, err := h.Users.GetUser(context.Background(), first.Username)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Username != first.Username {
		t.Fatalf("username = %q", view.Username)
	}
	if _, err := h.Users.GetUser(context.Background(), "ghost"); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	views, err := h.Users.ListUsers(context.Background(), h.Organizer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("listed %d accounts, want 2", len(views))
	}

	if _, err := h.Users.ListUsers(context.Background(), first.Principal()); !errors.Is(err, application.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestUserService_AvailableSpeakers(t *testing.T) {
	h := testfixtures.NewServiceHarness(t)
	room := h.MustCreateRoom(t, testfixtures.NewRoomFixture(testfixtures.WithRoomCapacity(20)))
	booked := testfixtures.NewAccountFixture(testfixtures.WithPermission(conference.PermissionSpeaker))
	free := testfixtures.NewAccountFixture(testfixtures.WithPermission(conference.PermissionSpeaker))
	h.MustCreateAccount(t, booked)
	h.MustCreateAccount(t, free)

	event := testfixtures.NewEventFixture(
		testfixtures.WithEventRoom(room.Code),
		testfixtures.WithEventSpeakers(booked.Username),
	)
	h.MustCreateTalk(t, event)

	available, err := h.Users.AvailableSpeakers(context.Background(), h.Organizer, event.Start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(available, []string{free.Username}) {
		t.Fatalf("available = %v, want only the free speaker", available)
	}

	later, err := h.Users.AvailableSpeakers(context.Background(), h.Organizer, event.Start.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(later) != 2 {
		t.Fatalf("available = %v, want both after the talk ends", later)
	}

	if _, err := h.Users.AvailableSpeakers(context.Background(), free.Principal(), event.Start); !errors.Is(err, application.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}
