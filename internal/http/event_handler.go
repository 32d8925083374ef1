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

type eventService interface {
	CreateParty(ctx context.Context, params application.CreatePartyParams) (application.EventView, error)
	CreateTalk(ctx context.Context, params application.CreateTalkParams) (application.EventView, error)
	CreateDiscussion(ctx context.Context, params application.CreateDiscussionParams) (application.EventView, error)
	RemoveEvent(ctx context.Context, principal application.Principal, name string) error
	Enroll(ctx context.Context, principal application.Principal, eventName string) error
	Unenroll(ctx context.Context, principal application.Principal, eventName string) error
	ChangeCapacity(ctx context.Context, principal application.Principal, eventName string, newCapacity int) error
	AssignSpeakerToTalk(ctx context.Context, principal application.Principal, talkName, username string) error
	AddSpeakerToDiscussion(ctx context.Context, principal application.Principal, discussionName, username string) error
	RemoveSpeakerFromDiscussion(ctx context.Context, principal application.Principal, discussionName, username string) error
	GetEvent(ctx context.Context, name string) (application.EventView, error)
	ListEvents(ctx context.Context) []application.EventView
}

// EventHandler exposes event scheduling, enrollment, and speaker management.
type EventHandler struct {
	service   eventService
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

// Create schedules a new event. The request's type field selects the
// variant; talks take a single speaker, discussions a speaker list.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req eventRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.log(r.Context(), "Create", "principal", principal.Username, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	typ, err := conference.ParseEventType(req.Type)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Create", "principal", principal.Username, "event", req.Name, "type", req.Type)

	var view application.EventView
	switch typ {
	case conference.TypeParty:
		view, err = h.service.CreateParty(r.Context(), application.CreatePartyParams{
			Principal: principal,
			Input: application.PartyInput{
				Name:     req.Name,
				Start:    req.Start,
				RoomCode: req.RoomCode,
				Capacity: req.Capacity,
				VIPOnly:  req.VIPOnly,
			},
		})
	case conference.TypeTalk:
		view, err = h.service.CreateTalk(r.Context(), application.CreateTalkParams{
			Principal: principal,
			Input: application.TalkInput{
				Name:     req.Name,
				Start:    req.Start,
				RoomCode: req.RoomCode,
				Capacity: req.Capacity,
				VIPOnly:  req.VIPOnly,
				Speaker:  req.Speaker,
			},
		})
	default:
		view, err = h.service.CreateDiscussion(r.Context(), application.CreateDiscussionParams{
			Principal: principal,
			Input: application.DiscussionInput{
				Name:     req.Name,
				Start:    req.Start,
				RoomCode: req.RoomCode,
				Capacity: req.Capacity,
				VIPOnly:  req.VIPOnly,
				Speakers: req.Speakers,
			},
		})
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "event creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "event created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, eventResponse{Event: toEventDTO(view)})
}

// Get returns one event.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	name, ok := EventNameFromContext(r.Context())
	if !ok || strings.TrimSpace(name) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEvent)
		return
	}

	view, err := h.service.GetEvent(r.Context(), name)
	if err != nil {
		h.log(r.Context(), "Get", "event", name).ErrorContext(r.Context(), "event lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: toEventDTO(view)})
}

// List returns every scheduled event.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	events := h.service.ListEvents(r.Context())
	h.log(r.Context(), "List").With("result_count", len(events)).InfoContext(r.Context(), "events listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{Events: toEventDTOs(events)})
}

// Delete cancels an event.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	name, ok := EventNameFromContext(r.Context())
	if !ok || strings.TrimSpace(name) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEvent)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal", principal.Username, "event", name)

	if err := h.service.RemoveEvent(r.Context(), principal, name); err != nil {
		logger.ErrorContext(r.Context(), "event removal failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "event removed")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Enroll signs the principal up for the event.
func (h *EventHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	h.enrollment(w, r, "Enroll", func(ctx context.Context, principal application.Principal, name string) error {
		return h.service.Enroll(ctx, principal, name)
	})
}

// Unenroll removes the principal from the event.
func (h *EventHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	h.enrollment(w, r, "Unenroll", func(ctx context.Context, principal application.Principal, name string) error {
		return h.service.Unenroll(ctx, principal, name)
	})
}

func (h *EventHandler) enrollment(w http.ResponseWriter, r *http.Request, operation string, fn func(context.Context, application.Principal, string) error) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	name, ok := EventNameFromContext(r.Context())
	if !ok || strings.TrimSpace(name) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEvent)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), operation, "principal", principal.Username, "event", name)

	if err := fn(r.Context(), principal, name); err != nil {
		logger.ErrorContext(r.Context(), "enrollment change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "enrollment changed")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// ChangeCapacity resizes an event.
func (h *EventHandler) ChangeCapacity(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	name, ok := EventNameFromContext(r.Context())
	if !ok || strings.TrimSpace(name) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEvent)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req capacityRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "ChangeCapacity", "principal", principal.Username, "event", name, "capacity", req.Capacity)

	if err := h.service.ChangeCapacity(r.Context(), principal, name, req.Capacity); err != nil {
		logger.ErrorContext(r.Context(), "capacity change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "capacity changed")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// AssignSpeaker replaces the speaker of a talk.
func (h *EventHandler) AssignSpeaker(w http.ResponseWriter, r *http.Request) {
	h.speakerChange(w, r, "AssignSpeaker", func(ctx context.Context, principal application.Principal, name, username string) error {
		return h.service.AssignSpeakerToTalk(ctx, principal, name, username)
	})
}

// AddSpeaker books an additional speaker onto a discussion.
func (h *EventHandler) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	h.speakerChange(w, r, "AddSpeaker", func(ctx context.Context, principal application.Principal, name, username string) error {
		return h.service.AddSpeakerToDiscussion(ctx, principal, name, username)
	})
}

// RemoveSpeaker releases a speaker from a discussion.
func (h *EventHandler) RemoveSpeaker(w http.ResponseWriter, r *http.Request) {
	h.speakerChange(w, r, "RemoveSpeaker", func(ctx context.Context, principal application.Principal, name, username string) error {
		return h.service.RemoveSpeakerFromDiscussion(ctx, principal, name, username)
	})
}

func (h *EventHandler) speakerChange(w http.ResponseWriter, r *http.Request, operation string, fn func(context.Context, application.Principal, string, string) error) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	name, ok := EventNameFromContext(r.Context())
	if !ok || strings.TrimSpace(name) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEvent)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req speakerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), operation, "principal", principal.Username, "event", name, "speaker", req.Username)

	if err := fn(r.Context(), principal, name, req.Username); err != nil {
		logger.ErrorContext(r.Context(), "speaker change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "speaker change applied")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type eventRequest struct {
	Type     string    `json:"type" validate:"required"`
	Name     string    `json:"name" validate:"required"`
	Start    time.Time `json:"start" validate:"required"`
	RoomCode string    `json:"room_code" validate:"required"`
	Capacity int       `json:"capacity" validate:"required,gt=0"`
	VIPOnly  bool      `json:"vip_only"`
	Speaker  string    `json:"speaker"`
	Speakers []string  `json:"speakers"`
}

type capacityRequest struct {
	Capacity int `json:"capacity" validate:"required,gt=0"`
}

type speakerRequest struct {
	Username string `json:"username" validate:"required"`
}

type eventResponse struct {
	Event eventDTO `json:"event"`
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}

type eventDTO struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	RoomCode  string   `json:"room_code"`
	Capacity  int      `json:"capacity"`
	VIPOnly   bool     `json:"vip_only"`
	Attendees []string `json:"attendees,omitempty"`
	Speakers  []string `json:"speakers,omitempty"`
}

func toEventDTO(view application.EventView) eventDTO {
	return eventDTO{
		Name:      view.Name,
		Type:      string(view.Type),
		Start:     view.Start.UTC().Format(time.RFC3339),
		End:       view.End.UTC().Format(time.RFC3339),
		RoomCode:  view.RoomCode,
		Capacity:  view.Capacity,
		VIPOnly:   view.VIPOnly,
		Attendees: view.Attendees,
		Speakers:  view.Speakers,
	}
}

func toEventDTOs(views []application.EventView) []eventDTO {
	if len(views) == 0 {
		return nil
	}
	out := make([]eventDTO, 0, len(views))
	for _, view := range views {
		out = append(out, toEventDTO(view))
	}
	return out
}
