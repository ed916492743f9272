package tokenstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/saferide/saferide/internal/logging"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewSQLiteStore(setupDB(t), logger)
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	s.Save(ctx, "tok1")

	got, ok := s.Get(ctx)
	require.True(t, ok)
	require.Equal(t, "tok1", got)
}

func TestSave_OverwritesPriorRecord(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	s.Save(ctx, "old")
	s.Save(ctx, "new")

	got, ok := s.Get(ctx)
	require.True(t, ok)
	require.Equal(t, "new", got)
}

func TestGet_EmptyStore(t *testing.T) {
	s := newStore(t)

	got, ok := s.Get(context.Background())
	require.False(t, ok)
	require.Empty(t, got)
}

func TestClear_RemovesBothKeys(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	s.Save(ctx, "tok")
	s.Clear(ctx)

	_, ok := s.Get(ctx)
	require.False(t, ok)
	require.True(t, s.IsExpired(ctx))
}

func TestClear_IdempotentOnEmptyStore(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	s.Clear(ctx)
	s.Clear(ctx)

	_, ok := s.Get(ctx)
	require.False(t, ok)
}

func TestIsExpired_NoTimestamp(t *testing.T) {
	s := newStore(t)
	require.True(t, s.IsExpired(context.Background()))
}

func TestIsExpired_Boundaries(t *testing.T) {
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		age     time.Duration
		expired bool
	}{
		{"fresh", time.Minute, false},
		{"just under a day", TokenTTL - time.Millisecond, false},
		{"exactly a day", TokenTTL, true},
		{"over a day", 25 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			ctx := context.Background()

			s.now = func() time.Time { return base.Add(-tt.age) }
			s.Save(ctx, "tok")

			s.now = func() time.Time { return base }
			require.Equal(t, tt.expired, s.IsExpired(ctx))
		})
	}
}

func TestSave_StorageFailureIsSwallowed(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.db.Close())

	// Must not panic or surface an error; the token is simply not persisted.
	s.Save(ctx, "tok")

	_, ok := s.Get(ctx)
	require.False(t, ok)
	require.True(t, s.IsExpired(ctx))
}
