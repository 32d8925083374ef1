package application

import (
	"sync"

	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/statistics"
	"github.com/example/conference-scheduler/internal/suggestions"
	"github.com/example/conference-scheduler/internal/validator"
)

// State owns the three registries and the read-only helpers built over them.
// Registries themselves commit unconditionally, so every service operation
// runs its validator checks and the following mutation under the same write
// lock; readers take the read lock.
type State struct {
	mu       sync.RWMutex
	revision uint64

	events *conference.EventRegistry
	rooms  *conference.RoomRegistry
	users  *conference.UserRegistry

	validator *validator.Validator
	finder    *suggestions.Finder
	stats     *statistics.Engine
}

// NewState builds an empty application state.
func NewState() *State {
	events := conference.NewEventRegistry()
	rooms := conference.NewRoomRegistry()
	users := conference.NewUserRegistry()

	checks := validator.New(events, rooms, users)

	return &State{
		events:    events,
		rooms:     rooms,
		users:     users,
		validator: checks,
		finder:    suggestions.NewFinder(rooms, checks),
		stats:     statistics.NewEngine(events, rooms),
	}
}

// Read runs fn while holding the read lock.
func (s *State) Read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// Write runs fn while holding the write lock and bumps the state revision.
func (s *State) Write(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	fn()
}

// Revision returns a counter that changes on every mutation. Read-side
// caches use it to detect stale entries.
func (s *State) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}
