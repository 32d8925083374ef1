package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/conference"
)

type roomService interface {
	CreateRoom(ctx context.Context, params application.CreateRoomParams) (application.RoomView, error)
	GetRoom(ctx context.Context, code string) (application.RoomView, error)
	ListRooms(ctx context.Context) []application.RoomView
	SuggestRooms(ctx context.Context, params application.SuggestRoomsParams) (application.RoomSuggestion, error)
}

// RoomHandler exposes the room inventory and the suggestion search.
type RoomHandler struct {
	service   roomService
	responder responder
	logger    *slog.Logger
}

func NewRoomHandler(service roomService, logger *slog.Logger) *RoomHandler {
	base := defaultLogger(logger)
	return &RoomHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *RoomHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "RoomHandler", operation, attrs...)
}

// Create registers a room.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req roomRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.log(r.Context(), "Create", "principal", principal.Username, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode room request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Create", "principal", principal.Username, "room", req.Code)

	room, err := h.service.CreateRoom(r.Context(), application.CreateRoomParams{
		Principal: principal,
		Input:     input,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "room creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "room created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, roomResponse{Room: toRoomDTO(room)})
}

// Get returns one room.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	code, ok := RoomCodeFromContext(r.Context())
	if !ok || strings.TrimSpace(code) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRoom)
		return
	}

	room, err := h.service.GetRoom(r.Context(), code)
	if err != nil {
		h.log(r.Context(), "Get", "room", code).ErrorContext(r.Context(), "room lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, roomResponse{Room: toRoomDTO(room)})
}

// List returns the full room inventory.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rooms := h.service.ListRooms(r.Context())
	h.log(r.Context(), "List").With("result_count", len(rooms)).InfoContext(r.Context(), "rooms listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRoomsResponse{Rooms: toRoomDTOs(rooms)})
}

// Suggest searches for rooms free at the requested start time, optionally
// narrowed by an exact feature match.
func (h *RoomHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req suggestRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.log(r.Context(), "Suggest", "principal", principal.Username, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode suggestion request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	params := application.SuggestRoomsParams{Principal: principal, Start: req.Start}
	if req.Features != nil {
		features, err := req.Features.toFeatures()
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
			return
		}
		params.Features = &features
	}

	logger := h.log(r.Context(), "Suggest", "principal", principal.Username, "start", req.Start)

	suggestion, err := h.service.SuggestRooms(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "room suggestion failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(suggestion.RoomCodes)).InfoContext(r.Context(), "rooms suggested")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, suggestResponse{
		RoomCodes:  suggestion.RoomCodes,
		ExactMatch: suggestion.ExactMatch,
	})
}

type featuresDTO struct {
	Board        string `json:"board"`
	Seating      string `json:"seating"`
	Projector    bool   `json:"projector"`
	Speakerphone bool   `json:"speakerphone"`
	Food         bool   `json:"food"`
}

func (f featuresDTO) toFeatures() (conference.Features, error) {
	board, err := conference.ParseBoardType(f.Board)
	if err != nil {
		return conference.Features{}, err
	}
	seating, err := conference.ParseSeatingType(f.Seating)
	if err != nil {
		return conference.Features{}, err
	}
	return conference.Features{
		Board:        board,
		Seating:      seating,
		Projector:    f.Projector,
		Speakerphone: f.Speakerphone,
		Food:         f.Food,
	}, nil
}

type roomRequest struct {
	Code         string `json:"code" validate:"required"`
	Capacity     int    `json:"capacity" validate:"required,gt=0"`
	Board        string `json:"board"`
	Seating      string `json:"seating"`
	Projector    bool   `json:"projector"`
	Speakerphone bool   `json:"speakerphone"`
	Food         bool   `json:"food"`
}

func (r roomRequest) toInput() (application.RoomInput, error) {
	board := conference.BoardNone
	if r.Board != "" {
		parsed, err := conference.ParseBoardType(r.Board)
		if err != nil {
			return application.RoomInput{}, err
		}
		board = parsed
	}
	seating := conference.SeatingAuditorium
	if r.Seating != "" {
		parsed, err := conference.ParseSeatingType(r.Seating)
		if err != nil {
			return application.RoomInput{}, err
		}
		seating = parsed
	}
	return application.RoomInput{
		Code:         strings.TrimSpace(r.Code),
		Capacity:     r.Capacity,
		Board:        board,
		Seating:      seating,
		Projector:    r.Projector,
		Speakerphone: r.Speakerphone,
		Food:         r.Food,
	}, nil
}

type suggestRequest struct {
	Start    time.Time    `json:"start" validate:"required"`
	Features *featuresDTO `json:"features"`
}

type suggestResponse struct {
	RoomCodes  []string `json:"room_codes"`
	ExactMatch bool     `json:"exact_match"`
}

type roomResponse struct {
	Room roomDTO `json:"room"`
}

type listRoomsResponse struct {
	Rooms []roomDTO `json:"rooms"`
}

type roomDTO struct {
	Code         string   `json:"code"`
	Capacity     int      `json:"capacity"`
	Board        string   `json:"board"`
	Seating      string   `json:"seating"`
	Projector    bool     `json:"projector"`
	Speakerphone bool     `json:"speakerphone"`
	Food         bool     `json:"food"`
	HostedEvents []string `json:"hosted_events,omitempty"`
}

func toRoomDTO(room application.RoomView) roomDTO {
	return roomDTO{
		Code:         room.Code,
		Capacity:     room.Capacity,
		Board:        string(room.Board),
		Seating:      string(room.Seating),
		Projector:    room.Projector,
		Speakerphone: room.Speakerphone,
		Food:         room.Food,
		HostedEvents: room.HostedEvents,
	}
}

func toRoomDTOs(rooms []application.RoomView) []roomDTO {
	if len(rooms) == 0 {
		return nil
	}
	out := make([]roomDTO, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomDTO(room))
	}
	return out
}
