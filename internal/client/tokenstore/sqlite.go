package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/saferide/saferide/internal/client/migrations"
	"github.com/saferide/saferide/internal/dbx"
	"github.com/saferide/saferide/internal/logging"
)

// SQLiteStore keeps the credential record in a local SQLite metadata table.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger

	// now is a seam for tests.
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB, logger logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger, now: time.Now}
}

// InitDatabase opens the local SQLite file and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, err
	}

	return db, nil
}

func setKey(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *SQLiteStore) getKey(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	return value, err
}

// Save writes the token and the current timestamp in a single transaction,
// replacing any prior record. Storage failures are logged, never returned;
// the session then simply behaves as if nothing was persisted.
func (s *SQLiteStore) Save(ctx context.Context, token string) {
	timestamp := strconv.FormatInt(s.now().UnixMilli(), 10)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := setKey(ctx, tx, keyAuthToken, token); err != nil {
			return err
		}
		return setKey(ctx, tx, keyAuthTimestamp, timestamp)
	})
	if err != nil {
		s.logger.Error(ctx, "failed to save token", "error", err.Error())
	}
}

// Get returns the persisted token. Unreadable storage is reported as absent.
func (s *SQLiteStore) Get(ctx context.Context) (string, bool) {
	token, err := s.getKey(ctx, keyAuthToken)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error(ctx, "failed to read token", "error", err.Error())
		}
		return "", false
	}
	return token, true
}

// Clear removes both fields. Clearing an already-empty store is a no-op.
func (s *SQLiteStore) Clear(ctx context.Context) {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM metadata WHERE key IN (?, ?)`, keyAuthToken, keyAuthTimestamp)
	if err != nil {
		s.logger.Error(ctx, "failed to clear token store", "error", err.Error())
	}
}

// IsExpired reports whether the saved token has reached TokenTTL. A missing
// or unparseable timestamp counts as expired.
func (s *SQLiteStore) IsExpired(ctx context.Context) bool {
	raw, err := s.getKey(ctx, keyAuthTimestamp)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error(ctx, "failed to read token timestamp", "error", err.Error())
		}
		return true
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Error(ctx, "malformed token timestamp", "value", raw)
		return true
	}

	issuedAt := time.UnixMilli(ms)
	return s.now().Sub(issuedAt) >= TokenTTL
}
