package persistence

import "context"

// SnapshotStore persists and restores full engine snapshots. Snapshots are
// written whole; there is no partial update.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	LoadLatestSnapshot(ctx context.Context) (Snapshot, error)
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	PruneSnapshots(ctx context.Context, keep int) error
}

// SnapshotInfo summarizes a stored snapshot without its payload.
type SnapshotInfo struct {
	ID      string
	TakenAt string
	Rooms   int
	Users   int
	Events  int
}
