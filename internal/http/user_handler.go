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

type userService interface {
	CreateAccount(ctx context.Context, params application.CreateAccountParams) (application.UserView, error)
	GetUser(ctx context.Context, username string) (application.UserView, error)
	ListUsers(ctx context.Context, principal application.Principal) ([]application.UserView, error)
	AvailableSpeakers(ctx context.Context, principal application.Principal, start time.Time) ([]string, error)
}

// UserHandler exposes organizer-controlled account management and the
// speaker availability query.
type UserHandler struct {
	service   userService
	responder responder
	logger    *slog.Logger
}

func NewUserHandler(service userService, logger *slog.Logger) *UserHandler {
	base := defaultLogger(logger)
	return &UserHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *UserHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "UserHandler", operation, attrs...)
}

// Create registers an account at any permission level.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req createUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.log(r.Context(), "Create", "principal", principal.Username, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode user request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	permission, err := conference.ParsePermissionLevel(req.Permission)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Create", "principal", principal.Username, "username", req.Username)

	user, err := h.service.CreateAccount(r.Context(), application.CreateAccountParams{
		Principal: principal,
		Input: application.UserInput{
			Username:   req.Username,
			Password:   req.Password,
			Permission: permission,
		},
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "account creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "account created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, userResponse{User: toUserDTO(user)})
}

// Get returns one account.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	username, ok := UsernameFromContext(r.Context())
	if !ok || strings.TrimSpace(username) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidUsername)
		return
	}

	user, err := h.service.GetUser(r.Context(), username)
	if err != nil {
		h.log(r.Context(), "Get", "username", username).ErrorContext(r.Context(), "user lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, userResponse{User: toUserDTO(user)})
}

// List returns every account for an organizer.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal", principal.Username)

	users, err := h.service.ListUsers(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "user list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(users)).InfoContext(r.Context(), "users listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listUsersResponse{Users: toUserDTOs(users)})
}

// AvailableSpeakers lists speakers free for the hour starting at the
// `start` query parameter (RFC 3339).
func (h *UserHandler) AvailableSpeakers(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "AvailableSpeakers", "principal", principal.Username, "start", start)

	speakers, err := h.service.AvailableSpeakers(r.Context(), principal, start)
	if err != nil {
		logger.ErrorContext(r.Context(), "speaker availability failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(speakers)).InfoContext(r.Context(), "available speakers listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availableSpeakersResponse{Speakers: speakers})
}

type createUserRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=4"`
	Permission string `json:"permission" validate:"required"`
}

type userResponse struct {
	User userDTO `json:"user"`
}

type listUsersResponse struct {
	Users []userDTO `json:"users"`
}

type availableSpeakersResponse struct {
	Speakers []string `json:"speakers"`
}

type userDTO struct {
	Username       string   `json:"username"`
	Permission     string   `json:"permission"`
	EnrolledEvents []string `json:"enrolled_events,omitempty"`
}

func toUserDTO(user application.UserView) userDTO {
	return userDTO{
		Username:       user.Username,
		Permission:     string(user.Permission),
		EnrolledEvents: user.EnrolledEvents,
	}
}

func toUserDTOs(users []application.UserView) []userDTO {
	if len(users) == 0 {
		return nil
	}
	out := make([]userDTO, 0, len(users))
	for _, user := range users {
		out = append(out, toUserDTO(user))
	}
	return out
}
