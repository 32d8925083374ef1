package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/conference-scheduler/internal/persistence"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id       TEXT PRIMARY KEY,
	taken_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_rooms (
	snapshot_id  TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	code         TEXT NOT NULL,
	capacity     INTEGER NOT NULL CHECK (capacity > 0),
	board        TEXT NOT NULL,
	seating      TEXT NOT NULL,
	projector    INTEGER NOT NULL,
	speakerphone INTEGER NOT NULL,
	food         INTEGER NOT NULL,
	PRIMARY KEY (snapshot_id, code)
);

CREATE TABLE IF NOT EXISTS snapshot_users (
	snapshot_id   TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	username      TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	permission    TEXT NOT NULL,
	is_speaker    INTEGER NOT NULL,
	PRIMARY KEY (snapshot_id, username)
);

CREATE TABLE IF NOT EXISTS snapshot_events (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL,
	start       TEXT NOT NULL,
	room_code   TEXT NOT NULL,
	capacity    INTEGER NOT NULL CHECK (capacity > 0),
	vip_only    INTEGER NOT NULL,
	PRIMARY KEY (snapshot_id, name)
);

CREATE TABLE IF NOT EXISTS snapshot_event_attendees (
	snapshot_id TEXT NOT NULL,
	event_name  TEXT NOT NULL,
	username    TEXT NOT NULL,
	PRIMARY KEY (snapshot_id, event_name, username),
	FOREIGN KEY (snapshot_id, event_name) REFERENCES snapshot_events(snapshot_id, name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS snapshot_event_speakers (
	snapshot_id TEXT NOT NULL,
	event_name  TEXT NOT NULL,
	username    TEXT NOT NULL,
	PRIMARY KEY (snapshot_id, event_name, username),
	FOREIGN KEY (snapshot_id, event_name) REFERENCES snapshot_events(snapshot_id, name) ON DELETE CASCADE
);
`

// takenAtLayout pads fractional seconds to nine digits so that the stored
// text sorts in chronological order. RFC3339Nano trims trailing zeros,
// which breaks ORDER BY on same-second timestamps.
const takenAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SnapshotStore implements persistence.SnapshotStore on SQLite. Each
// snapshot is written in one transaction across the five tables.
type SnapshotStore struct {
	pool *ConnectionPool
}

// NewSnapshotStore bootstraps the schema and returns a store over the pool.
func NewSnapshotStore(pool *ConnectionPool) (*SnapshotStore, error) {
	if _, err := pool.DB().Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return &SnapshotStore{pool: pool}, nil
}

// SaveSnapshot writes the snapshot and all of its rows atomically.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot persistence.Snapshot) error {
	if snapshot.ID == "" {
		return persistence.ErrConstraintViolation
	}

	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshots (id, taken_at) VALUES (?, ?)`,
			snapshot.ID, snapshot.TakenAt.UTC().Format(takenAtLayout),
		); err != nil {
			return mapSQLiteError(err)
		}

		for _, room := range snapshot.Rooms {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO snapshot_rooms (snapshot_id, code, capacity, board, seating, projector, speakerphone, food)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				snapshot.ID, room.Code, room.Capacity, room.Board, room.Seating,
				boolToInt(room.Projector), boolToInt(room.Speakerphone), boolToInt(room.Food),
			); err != nil {
				return mapSQLiteError(err)
			}
		}

		for _, user := range snapshot.Users {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO snapshot_users (snapshot_id, username, password_hash, permission, is_speaker)
				 VALUES (?, ?, ?, ?, ?)`,
				snapshot.ID, user.Username, user.PasswordHash, user.Permission, boolToInt(user.IsSpeaker),
			); err != nil {
				return mapSQLiteError(err)
			}
		}

		for _, event := range snapshot.Events {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO snapshot_events (snapshot_id, name, type, start, room_code, capacity, vip_only)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				snapshot.ID, event.Name, event.Type, event.Start.UTC().Format(time.RFC3339Nano),
				event.RoomCode, event.Capacity, boolToInt(event.VIPOnly),
			); err != nil {
				return mapSQLiteError(err)
			}
			for _, username := range event.Attendees {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO snapshot_event_attendees (snapshot_id, event_name, username) VALUES (?, ?, ?)`,
					snapshot.ID, event.Name, username,
				); err != nil {
					return mapSQLiteError(err)
				}
			}
			for _, username := range event.Speakers {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO snapshot_event_speakers (snapshot_id, event_name, username) VALUES (?, ?, ?)`,
					snapshot.ID, event.Name, username,
				); err != nil {
					return mapSQLiteError(err)
				}
			}
		}

		return nil
	})
}

// LoadLatestSnapshot returns the most recently taken snapshot.
func (s *SnapshotStore) LoadLatestSnapshot(ctx context.Context) (persistence.Snapshot, error) {
	var snapshot persistence.Snapshot
	var takenAt string

	err := s.pool.DB().QueryRowContext(ctx,
		`SELECT id, taken_at FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT 1`,
	).Scan(&snapshot.ID, &takenAt)
	if err != nil {
		return persistence.Snapshot{}, mapSQLiteError(err)
	}
	if snapshot.TakenAt, err = time.Parse(takenAtLayout, takenAt); err != nil {
		return persistence.Snapshot{}, fmt.Errorf("failed to parse taken_at: %w", err)
	}

	if snapshot.Rooms, err = s.loadRooms(ctx, snapshot.ID); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Users, err = s.loadUsers(ctx, snapshot.ID); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Events, err = s.loadEvents(ctx, snapshot.ID); err != nil {
		return persistence.Snapshot{}, err
	}

	return snapshot, nil
}

// ListSnapshots summarizes every stored snapshot, newest first.
func (s *SnapshotStore) ListSnapshots(ctx context.Context) ([]persistence.SnapshotInfo, error) {
	rows, err := s.pool.DB().QueryContext(ctx, `
		SELECT sn.id, sn.taken_at,
			(SELECT COUNT(*) FROM snapshot_rooms r WHERE r.snapshot_id = sn.id),
			(SELECT COUNT(*) FROM snapshot_users u WHERE u.snapshot_id = sn.id),
			(SELECT COUNT(*) FROM snapshot_events e WHERE e.snapshot_id = sn.id)
		FROM snapshots sn
		ORDER BY sn.taken_at DESC, sn.id DESC`)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var infos []persistence.SnapshotInfo
	for rows.Next() {
		var info persistence.SnapshotInfo
		if err := rows.Scan(&info.ID, &info.TakenAt, &info.Rooms, &info.Users, &info.Events); err != nil {
			return nil, mapSQLiteError(err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// PruneSnapshots deletes all but the keep newest snapshots.
func (s *SnapshotStore) PruneSnapshots(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.pool.DB().ExecContext(ctx, `
		DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?
		)`, keep)
	return mapSQLiteError(err)
}

func (s *SnapshotStore) loadRooms(ctx context.Context, snapshotID string) ([]persistence.RoomRecord, error) {
	rows, err := s.pool.DB().QueryContext(ctx,
		`SELECT code, capacity, board, seating, projector, speakerphone, food
		 FROM snapshot_rooms WHERE snapshot_id = ? ORDER BY code`, snapshotID)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var rooms []persistence.RoomRecord
	for rows.Next() {
		var room persistence.RoomRecord
		var projector, speakerphone, food int
		if err := rows.Scan(&room.Code, &room.Capacity, &room.Board, &room.Seating, &projector, &speakerphone, &food); err != nil {
			return nil, mapSQLiteError(err)
		}
		room.Projector = projector != 0
		room.Speakerphone = speakerphone != 0
		room.Food = food != 0
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (s *SnapshotStore) loadUsers(ctx context.Context, snapshotID string) ([]persistence.UserRecord, error) {
	rows, err := s.pool.DB().QueryContext(ctx,
		`SELECT username, password_hash, permission, is_speaker
		 FROM snapshot_users WHERE snapshot_id = ? ORDER BY username`, snapshotID)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var users []persistence.UserRecord
	for rows.Next() {
		var user persistence.UserRecord
		var isSpeaker int
		if err := rows.Scan(&user.Username, &user.PasswordHash, &user.Permission, &isSpeaker); err != nil {
			return nil, mapSQLiteError(err)
		}
		user.IsSpeaker = isSpeaker != 0
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *SnapshotStore) loadEvents(ctx context.Context, snapshotID string) ([]persistence.EventRecord, error) {
	rows, err := s.pool.DB().QueryContext(ctx,
		`SELECT name, type, start, room_code, capacity, vip_only
		 FROM snapshot_events WHERE snapshot_id = ? ORDER BY name`, snapshotID)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var events []persistence.EventRecord
	for rows.Next() {
		var event persistence.EventRecord
		var start string
		var vipOnly int
		if err := rows.Scan(&event.Name, &event.Type, &start, &event.RoomCode, &event.Capacity, &vipOnly); err != nil {
			return nil, mapSQLiteError(err)
		}
		if event.Start, err = time.Parse(time.RFC3339Nano, start); err != nil {
			return nil, fmt.Errorf("failed to parse start: %w", err)
		}
		event.VIPOnly = vipOnly != 0
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}

	for i := range events {
		if events[i].Attendees, err = s.loadEventMembers(ctx, "snapshot_event_attendees", snapshotID, events[i].Name); err != nil {
			return nil, err
		}
		if events[i].Speakers, err = s.loadEventMembers(ctx, "snapshot_event_speakers", snapshotID, events[i].Name); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (s *SnapshotStore) loadEventMembers(ctx context.Context, table, snapshotID, eventName string) ([]string, error) {
	rows, err := s.pool.DB().QueryContext(ctx,
		fmt.Sprintf(`SELECT username FROM %s WHERE snapshot_id = ? AND event_name = ? ORDER BY username`, table),
		snapshotID, eventName)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, mapSQLiteError(err)
		}
		usernames = append(usernames, username)
	}
	return usernames, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
