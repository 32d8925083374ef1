package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/report"
)

type scheduleService interface {
	DailySchedule(ctx context.Context) []application.ScheduleDay
	UserSchedule(ctx context.Context, username string) ([]application.EventView, error)
}

// ScheduleHandler serves the chronological day-grouped views of the calendar.
type ScheduleHandler struct {
	service   scheduleService
	responder responder
	logger    *slog.Logger
}

func NewScheduleHandler(service scheduleService, logger *slog.Logger) *ScheduleHandler {
	base := defaultLogger(logger)
	return &ScheduleHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ScheduleHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ScheduleHandler", operation, attrs...)
}

// Daily returns every event grouped by calendar day.
func (h *ScheduleHandler) Daily(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	days := h.service.DailySchedule(r.Context())
	h.log(r.Context(), "Daily").With("day_count", len(days)).InfoContext(r.Context(), "daily schedule served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleResponse{Days: toScheduleDayDTOs(days)})
}

// DailyReport returns the day-grouped schedule as a plain-text table.
func (h *ScheduleHandler) DailyReport(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	days := h.service.DailySchedule(r.Context())

	var buf bytes.Buffer
	report.DailySchedule(&buf, days)

	h.log(r.Context(), "DailyReport").With("day_count", len(days)).InfoContext(r.Context(), "daily report served")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Mine returns the requesting principal's enrolled events in start order.
func (h *ScheduleHandler) Mine(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingToken)
		return
	}

	logger := h.log(r.Context(), "Mine", "principal", principal.Username)

	events, err := h.service.UserSchedule(r.Context(), principal.Username)
	if err != nil {
		logger.ErrorContext(r.Context(), "user schedule lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(events)).InfoContext(r.Context(), "user schedule served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{Events: toEventDTOs(events)})
}

type scheduleResponse struct {
	Days []scheduleDayDTO `json:"days"`
}

type scheduleDayDTO struct {
	Date   string     `json:"date"`
	Events []eventDTO `json:"events"`
}

func toScheduleDayDTOs(days []application.ScheduleDay) []scheduleDayDTO {
	if len(days) == 0 {
		return nil
	}
	out := make([]scheduleDayDTO, 0, len(days))
	for _, day := range days {
		out = append(out, scheduleDayDTO{
			Date:   day.Date.Format(time.DateOnly),
			Events: toEventDTOs(day.Events),
		})
	}
	return out
}
