package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/conference-scheduler/internal/application"
)

type authService interface {
	Authenticate(ctx context.Context, username, password string) (application.CredentialsResult, error)
}

type registrationService interface {
	Register(ctx context.Context, params application.RegisterParams) (application.UserView, error)
}

// AuthHandler exposes login and public self-signup.
type AuthHandler struct {
	auth      authService
	users     registrationService
	responder responder
	logger    *slog.Logger
}

func NewAuthHandler(auth authService, users registrationService, logger *slog.Logger) *AuthHandler {
	base := defaultLogger(logger)
	return &AuthHandler{auth: auth, users: users, responder: newResponder(base), logger: base}
}

func (h *AuthHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AuthHandler", operation, attrs...)
}

// Login authenticates credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.auth == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.log(r.Context(), "Login", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode login request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Login", "username", req.Username)

	result, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		logger.ErrorContext(r.Context(), "login failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "login succeeded")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		Principal: principalDTO{
			Username:   result.Principal.Username,
			Permission: string(result.Principal.Permission),
		},
	})
}

// Register creates a plain attendee account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.users == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.log(r.Context(), "Register", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode register request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Register", "username", req.Username)

	user, err := h.users.Register(r.Context(), application.RegisterParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "registration failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "user registered")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, userResponse{User: toUserDTO(user)})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

type principalDTO struct {
	Username   string `json:"username"`
	Permission string `json:"permission"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	Principal principalDTO `json:"principal"`
}
