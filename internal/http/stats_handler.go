package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/conference-scheduler/internal/application"
	"github.com/example/conference-scheduler/internal/report"
)

type statisticsService interface {
	Summary(ctx context.Context, principal application.Principal) (application.StatisticsSummary, error)
	FillPercentage(ctx context.Context, principal application.Principal, eventName string) (string, error)
}

// StatisticsHandler exposes the organizer-only aggregate queries.
type StatisticsHandler struct {
	service   statisticsService
	responder responder
	logger    *slog.Logger
}

func NewStatisticsHandler(service statisticsService, logger *slog.Logger) *StatisticsHandler {
	base := defaultLogger(logger)
	return &StatisticsHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *StatisticsHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "StatisticsHandler", operation, attrs...)
}

// Summary returns the full statistics bundle.
func (h *StatisticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Summary", "principal", principal.Username)

	summary, err := h.service.Summary(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "statistics summary failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "statistics summary served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toStatisticsDTO(summary))
}

// SummaryReport returns the statistics bundle as a plain-text report.
func (h *StatisticsHandler) SummaryReport(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "SummaryReport", "principal", principal.Username)

	summary, err := h.service.Summary(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "statistics report failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	var buf bytes.Buffer
	report.Statistics(&buf, summary)

	logger.InfoContext(r.Context(), "statistics report served")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// FillPercentage returns how full a single event is.
func (h *StatisticsHandler) FillPercentage(w http.ResponseWriter, r *http.Request) {
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
	logger := h.log(r.Context(), "FillPercentage", "principal", principal.Username, "event", name)

	percent, err := h.service.FillPercentage(r.Context(), principal, name)
	if err != nil {
		logger.ErrorContext(r.Context(), "fill percentage failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "fill percentage served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, fillPercentageResponse{Event: name, FillPercentage: percent})
}

type statisticsDTO struct {
	MostPopularTypes    []string   `json:"most_popular_types"`
	MostPopularCount    int        `json:"most_popular_count"`
	FillPercentages     []string   `json:"fill_percentages"`
	TopEvents           [][]string `json:"top_events"`
	TopRooms            [][]string `json:"top_rooms"`
	AverageEventsPerDay float64    `json:"average_events_per_day"`
	AverageAttendees    float64    `json:"average_attendees_per_day"`
}

type fillPercentageResponse struct {
	Event          string `json:"event"`
	FillPercentage string `json:"fill_percentage"`
}

func toStatisticsDTO(summary application.StatisticsSummary) statisticsDTO {
	types := make([]string, 0, len(summary.MostPopularTypes))
	for _, typ := range summary.MostPopularTypes {
		types = append(types, string(typ))
	}
	return statisticsDTO{
		MostPopularTypes:    types,
		MostPopularCount:    summary.MostPopularCount,
		FillPercentages:     summary.FillPercentages,
		TopEvents:           [][]string{summary.TopEvents[0], summary.TopEvents[1], summary.TopEvents[2]},
		TopRooms:            [][]string{summary.TopRooms[0], summary.TopRooms[1], summary.TopRooms[2]},
		AverageEventsPerDay: summary.AverageEventsPerDay,
		AverageAttendees:    summary.AverageAttendees,
	}
}
