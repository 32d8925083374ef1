package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// StatisticsService exposes the organizer dashboard aggregates. Summaries
// are cached per state revision since every aggregate walks the full
// registries.
type StatisticsService struct {
	state  *State
	cache  *statsCache
	logger *slog.Logger
}

// NewStatisticsService wires a statistics service over the shared state.
func NewStatisticsService(state *State) *StatisticsService {
	return NewStatisticsServiceWithLogger(state, nil, 0, nil)
}

// NewStatisticsServiceWithLogger wires a statistics service with a logger,
// cache TTL, and clock.
func NewStatisticsServiceWithLogger(state *State, logger *slog.Logger, cacheTTL time.Duration, now func() time.Time) *StatisticsService {
	return &StatisticsService{
		state:  state,
		cache:  newStatsCache(cacheTTL, now),
		logger: defaultLogger(logger),
	}
}

func (s *StatisticsService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "StatisticsService", operation, attrs...)
}

// Summary computes every dashboard aggregate for an organizer.
func (s *StatisticsService) Summary(ctx context.Context, principal Principal) (summary StatisticsSummary, err error) {
	if s == nil {
		err = fmt.Errorf("StatisticsService is nil")
		return
	}
	if !principal.IsOrganizer() {
		err = ErrUnauthorized
		return
	}

	logger := s.loggerWith(ctx, "Summary", "principal", principal.Username)

	revision := s.state.Revision()
	if cached, ok := s.cache.Get(revision); ok {
		logger.DebugContext(ctx, "statistics summary served from cache")
		return cached, nil
	}

	s.state.Read(func() {
		summary = StatisticsSummary{
			MostPopularTypes:    s.state.stats.MostPopularEventType(),
			MostPopularCount:    s.state.stats.MostPopularEventTypeCount(),
			FillPercentages:     s.state.stats.FillPercentages(),
			AverageEventsPerDay: s.state.stats.AverageEventsPerDay(),
			AverageAttendees:    s.state.stats.AverageAttendeesPerDay(),
		}
		for rank := 1; rank <= 3; rank++ {
			summary.TopEvents[rank-1] = s.state.stats.TopEvents(rank)
			summary.TopRooms[rank-1] = s.state.stats.TopRooms(rank)
		}
	})

	s.cache.Store(revision, summary)
	logger.InfoContext(ctx, "statistics summary computed")
	return summary, nil
}

// FillPercentage reports how full a single event is.
func (s *StatisticsService) FillPercentage(ctx context.Context, principal Principal, eventName string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("StatisticsService is nil")
	}
	if !principal.IsOrganizer() {
		return "", ErrUnauthorized
	}

	var pct string
	var err error
	s.state.Read(func() {
		pct, err = s.state.stats.FillPercentage(eventName)
		if err != nil {
			err = mapRegistryError(err)
		}
	})
	return pct, err
}
