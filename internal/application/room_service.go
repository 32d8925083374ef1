package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/schedule"
	"github.com/example/conference-scheduler/internal/suggestions"
)

// CreateRoomParams wraps the data required to register a room.
type CreateRoomParams struct {
	Principal Principal
	Input     RoomInput
}

// RoomService orchestrates validation and registry mutation for rooms, and
// runs the suggestion search.
type RoomService struct {
	state  *State
	logger *slog.Logger
}

// NewRoomService wires a room service over the shared state.
func NewRoomService(state *State) *RoomService {
	return NewRoomServiceWithLogger(state, nil)
}

// NewRoomServiceWithLogger wires a room service with a specified logger.
func NewRoomServiceWithLogger(state *State, logger *slog.Logger) *RoomService {
	return &RoomService{state: state, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom registers a new room for an organizer.
func (s *RoomService) CreateRoom(ctx context.Context, params CreateRoomParams) (room RoomView, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom",
		"principal", params.Principal.Username,
		"room", params.Input.Code,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room created")
	}()

	if !params.Principal.IsOrganizer() {
		err = ErrUnauthorized
		return
	}

	input := params.Input
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Code) == "" {
		vErr.add("code", "code is required")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	s.state.Write(func() {
		var created *conference.Room
		created, err = s.state.rooms.Create(conference.NewRoomBuilder().
			Code(strings.TrimSpace(input.Code)).
			Capacity(input.Capacity).
			Board(input.Board).
			Seating(input.Seating).
			Projector(input.Projector).
			Speakerphone(input.Speakerphone).
			Food(input.Food))
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		room = roomView(created)
	})
	return
}

// GetRoom returns the read model for the room with the given code.
func (s *RoomService) GetRoom(ctx context.Context, code string) (RoomView, error) {
	if s == nil {
		return RoomView{}, fmt.Errorf("RoomService is nil")
	}

	var view RoomView
	var err error
	s.state.Read(func() {
		var room *conference.Room
		room, err = s.state.rooms.Get(code)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		view = roomView(room)
	})
	return view, err
}

// ListRooms returns the full room inventory, ordered by code.
func (s *RoomService) ListRooms(ctx context.Context) []RoomView {
	if s == nil {
		return nil
	}

	var views []RoomView
	s.state.Read(func() {
		for _, room := range s.state.rooms.Rooms() {
			views = append(views, roomView(room))
		}
	})
	return views
}

// SuggestRooms finds rooms free for the hour starting at params.Start. When
// a feature set is requested the result is narrowed to exact matches; if no
// room matches exactly the search falls back to every free room so the
// organizer still gets candidates.
func (s *RoomService) SuggestRooms(ctx context.Context, params SuggestRoomsParams) (suggestion RoomSuggestion, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "SuggestRooms",
		"principal", params.Principal.Username,
		"start", params.Start,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to suggest rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "rooms suggested", "result_count", len(suggestion.RoomCodes), "exact_match", suggestion.ExactMatch)
	}()

	if !params.Principal.IsOrganizer() {
		err = ErrUnauthorized
		return
	}
	if params.Start.IsZero() {
		vErr := &ValidationError{}
		vErr.add("start", "start is required")
		err = vErr
		return
	}

	window := schedule.EventInterval(params.Start)
	s.state.Read(func() {
		available := s.state.finder.AvailableRooms(window)
		if params.Features == nil {
			suggestion = RoomSuggestion{RoomCodes: suggestions.Codes(available), ExactMatch: true}
			return
		}

		matched := s.state.finder.AvailableRoomsWithFeatures(window, *params.Features)
		if len(matched) > 0 {
			suggestion = RoomSuggestion{RoomCodes: suggestions.Codes(matched), ExactMatch: true}
			return
		}
		suggestion = RoomSuggestion{RoomCodes: suggestions.Codes(available), ExactMatch: false}
	})
	return
}

func roomView(room *conference.Room) RoomView {
	return RoomView{
		Code:         room.Code(),
		Capacity:     room.Capacity(),
		Board:        room.Board(),
		Seating:      room.Seating(),
		Projector:    room.HasProjector(),
		Speakerphone: room.HasSpeakerphone(),
		Food:         room.CanGetFood(),
		HostedEvents: room.HostedEventNames(),
	}
}
