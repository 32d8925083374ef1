package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/persistence"
)

type snapshotService interface {
	SaveForPrincipal(ctx context.Context, principal application.Principal) (string, error)
	ListSnapshots(ctx context.Context, principal application.Principal) ([]persistence.SnapshotInfo, error)
}

// SnapshotHandler lets organizers persist and inspect state snapshots.
type SnapshotHandler struct {
	service   snapshotService
	responder responder
	logger    *slog.Logger
}

func NewSnapshotHandler(service snapshotService, logger *slog.Logger) *SnapshotHandler {
	base := defaultLogger(logger)
	return &SnapshotHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SnapshotHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SnapshotHandler", operation, attrs...)
}

// Save persists the current in-memory state.
func (h *SnapshotHandler) Save(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Save", "principal", principal.Username)

	id, err := h.service.SaveForPrincipal(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "snapshot save failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("snapshot_id", id).InfoContext(r.Context(), "snapshot saved")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, snapshotResponse{ID: id})
}

// List returns the stored snapshots, newest first.
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal", principal.Username)

	infos, err := h.service.ListSnapshots(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "snapshot listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(infos)).InfoContext(r.Context(), "snapshots listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSnapshotsResponse{Snapshots: toSnapshotDTOs(infos)})
}

type snapshotResponse struct {
	ID string `json:"id"`
}

type listSnapshotsResponse struct {
	Snapshots []snapshotDTO `json:"snapshots"`
}

type snapshotDTO struct {
	ID      string `json:"id"`
	TakenAt string `json:"taken_at"`
	Rooms   int    `json:"rooms"`
	Users   int    `json:"users"`
	Events  int    `json:"events"`
}

func toSnapshotDTOs(infos []persistence.SnapshotInfo) []snapshotDTO {
	if len(infos) == 0 {
		return nil
	}
	out := make([]snapshotDTO, 0, len(infos))
	for _, info := range infos {
		out = append(out, snapshotDTO{
			ID:      info.ID,
			TakenAt: info.TakenAt,
			Rooms:   info.Rooms,
			Users:   info.Users,
			Events:  info.Events,
		})
	}
	return out
}
