package testfixtures

import (
	"path/filepath"
	"testing"

	"github.com/example/conference-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides a snapshot store backed by a temporary SQLite file
// for integration-style persistence tests.
type SQLiteHarness struct {
	Store *sqlite.SnapshotStore

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness over a temporary file with the
// schema bootstrapped. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "conference.db")

	pool, err := sqlite.NewConnectionPool(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	store, err := sqlite.NewSnapshotStore(pool)
	if err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to bootstrap storage: %v", err)
	}

	harness := &SQLiteHarness{
		Store: store,
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
