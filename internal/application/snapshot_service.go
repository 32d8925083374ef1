package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/persistence"
	"github.com/example/conference-scheduler/internal/schedule"
)

// SnapshotService copies the engine state to and from the snapshot store.
// The engine itself stays persistence-free; this service is the only code
// that walks the registries for storage.
type SnapshotService struct {
	state       *State
	store       persistence.SnapshotStore
	keep        int
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewSnapshotService wires a snapshot service. keep bounds how many
// snapshots PruneSnapshots retains after each save.
func NewSnapshotService(state *State, store persistence.SnapshotStore, keep int, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SnapshotService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if keep <= 0 {
		keep = 10
	}
	return &SnapshotService{
		state:       state,
		store:       store,
		keep:        keep,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *SnapshotService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SnapshotService", operation, attrs...)
}

// Save exports the current state and writes it as a new snapshot.
func (s *SnapshotService) Save(ctx context.Context) (id string, err error) {
	if s == nil {
		err = fmt.Errorf("SnapshotService is nil")
		return
	}
	if s.store == nil {
		err = fmt.Errorf("snapshot store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Save")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save snapshot", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "snapshot saved", "snapshot_id", id)
	}()

	snapshot := persistence.Snapshot{
		ID:      s.idGenerator(),
		TakenAt: s.now(),
	}
	s.state.Read(func() {
		snapshot.Rooms = exportRooms(s.state.rooms)
		snapshot.Users = exportUsers(s.state.users)
		snapshot.Events = exportEvents(s.state.events)
	})

	if err = s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return
	}
	if pruneErr := s.store.PruneSnapshots(ctx, s.keep); pruneErr != nil {
		logger.WarnContext(ctx, "failed to prune snapshots", "error", pruneErr)
	}

	id = snapshot.ID
	return
}

// SaveForPrincipal saves a snapshot on behalf of an organizer.
func (s *SnapshotService) SaveForPrincipal(ctx context.Context, principal Principal) (string, error) {
	if s == nil {
		return "", fmt.Errorf("SnapshotService is nil")
	}
	if !principal.IsOrganizer() {
		return "", ErrUnauthorized
	}
	return s.Save(ctx)
}

// RestoreLatest loads the newest snapshot into the state. With no stored
// snapshot the state is left as is and no error is reported.
func (s *SnapshotService) RestoreLatest(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("SnapshotService is nil")
	}
	if s.store == nil {
		return nil
	}

	logger := s.loggerWith(ctx, "RestoreLatest")

	snapshot, err := s.store.LoadLatestSnapshot(ctx)
	if errors.Is(err, persistence.ErrNotFound) {
		logger.InfoContext(ctx, "no snapshot to restore")
		return nil
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to load snapshot", "error", err)
		return err
	}

	s.state.Write(func() {
		err = importSnapshot(s.state, snapshot)
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to restore snapshot", "error", err, "snapshot_id", snapshot.ID)
		return err
	}

	logger.InfoContext(ctx, "snapshot restored",
		"snapshot_id", snapshot.ID,
		"rooms", len(snapshot.Rooms),
		"users", len(snapshot.Users),
		"events", len(snapshot.Events),
	)
	return nil
}

// ListSnapshots summarizes stored snapshots for an organizer.
func (s *SnapshotService) ListSnapshots(ctx context.Context, principal Principal) ([]persistence.SnapshotInfo, error) {
	if s == nil {
		return nil, fmt.Errorf("SnapshotService is nil")
	}
	if !principal.IsOrganizer() {
		return nil, ErrUnauthorized
	}
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListSnapshots(ctx)
}

func exportRooms(rooms *conference.RoomRegistry) []persistence.RoomRecord {
	var records []persistence.RoomRecord
	for _, room := range rooms.Rooms() {
		records = append(records, persistence.RoomRecord{
			Code:         room.Code(),
			Capacity:     room.Capacity(),
			Board:        string(room.Board()),
			Seating:      string(room.Seating()),
			Projector:    room.HasProjector(),
			Speakerphone: room.HasSpeakerphone(),
			Food:         room.CanGetFood(),
		})
	}
	return records
}

func exportUsers(users *conference.UserRegistry) []persistence.UserRecord {
	var records []persistence.UserRecord
	for _, username := range users.Usernames() {
		user, err := users.Get(username)
		if err != nil {
			continue
		}
		records = append(records, persistence.UserRecord{
			Username:     user.Username(),
			PasswordHash: user.PasswordHash(),
			Permission:   string(user.Permission()),
			IsSpeaker:    user.IsSpeaker(),
		})
	}
	return records
}

func exportEvents(events *conference.EventRegistry) []persistence.EventRecord {
	var records []persistence.EventRecord
	for _, event := range events.Events() {
		records = append(records, persistence.EventRecord{
			Name:      event.Name(),
			Type:      string(event.Type()),
			Start:     event.Start(),
			RoomCode:  event.RoomCode(),
			Capacity:  event.Capacity(),
			VIPOnly:   event.VIPOnly(),
			Attendees: event.Attendees(),
			Speakers:  event.SpeakerUsernames(),
		})
	}
	return records
}

// importSnapshot rebuilds registry state from stored records. The caller
// holds the write lock. Records are trusted: they were exported from a
// consistent state, so constraint checks are not re-run.
func importSnapshot(state *State, snapshot persistence.Snapshot) error {
	for _, record := range snapshot.Rooms {
		board, err := conference.ParseBoardType(record.Board)
		if err != nil {
			return fmt.Errorf("room %q: %w", record.Code, err)
		}
		seating, err := conference.ParseSeatingType(record.Seating)
		if err != nil {
			return fmt.Errorf("room %q: %w", record.Code, err)
		}
		if _, err := state.rooms.Create(conference.NewRoomBuilder().
			Code(record.Code).
			Capacity(record.Capacity).
			Board(board).
			Seating(seating).
			Projector(record.Projector).
			Speakerphone(record.Speakerphone).
			Food(record.Food)); err != nil {
			return fmt.Errorf("room %q: %w", record.Code, err)
		}
	}

	for _, record := range snapshot.Users {
		permission, err := conference.ParsePermissionLevel(record.Permission)
		if err != nil {
			return fmt.Errorf("user %q: %w", record.Username, err)
		}
		builder := conference.NewUserBuilder().
			Username(record.Username).
			PasswordHash(record.PasswordHash).
			Permission(permission)
		if record.IsSpeaker {
			_, err = state.users.CreateSpeaker(builder)
		} else {
			_, err = state.users.CreateUser(builder)
		}
		if err != nil {
			return fmt.Errorf("user %q: %w", record.Username, err)
		}
	}

	for _, record := range snapshot.Events {
		builder, err := eventBuilderForRecord(record)
		if err != nil {
			return err
		}
		if _, err := state.events.Create(builder); err != nil {
			return fmt.Errorf("event %q: %w", record.Name, err)
		}
		if err := state.rooms.AddHostedEvent(record.RoomCode, record.Name); err != nil {
			return fmt.Errorf("event %q: %w", record.Name, err)
		}

		window := schedule.EventInterval(record.Start)
		for _, username := range record.Speakers {
			if err := state.users.AssignSpeakerToEvent(username, record.Name, window); err != nil {
				return fmt.Errorf("event %q speaker %q: %w", record.Name, username, err)
			}
		}
		for _, username := range record.Attendees {
			if err := state.events.Enroll(username, record.Name, state.rooms); err != nil {
				return fmt.Errorf("event %q attendee %q: %w", record.Name, username, err)
			}
			if err := state.users.Enroll(username, record.Name); err != nil {
				return fmt.Errorf("event %q attendee %q: %w", record.Name, username, err)
			}
		}
	}

	return nil
}

func eventBuilderForRecord(record persistence.EventRecord) (*conference.EventBuilder, error) {
	typ, err := conference.ParseEventType(record.Type)
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", record.Name, err)
	}

	var builder *conference.EventBuilder
	switch typ {
	case conference.TypeParty:
		builder = conference.NewPartyBuilder()
	case conference.TypeTalk:
		builder = conference.NewTalkBuilder()
		if len(record.Speakers) > 0 {
			builder = builder.Speaker(record.Speakers[0])
		}
	default:
		builder = conference.NewDiscussionBuilder().Speakers(record.Speakers...)
	}

	return builder.
		Name(record.Name).
		StartTime(record.Start).
		RoomCode(record.RoomCode).
		Capacity(record.Capacity).
		VIPOnly(record.VIPOnly), nil
}
