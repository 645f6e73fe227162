// Package sqlite stores ledger records in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/saasify/internal/ledger"
	"github.com/louisbranch/saasify/internal/ledger/sqlite/migrations"
	"github.com/louisbranch/saasify/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed ledger.Store.
type Store struct {
	sqlDB *sql.DB
	ttl   time.Duration
	now   func() time.Time
}

// Open opens and migrates the ledger database at path. A zero ttl uses
// ledger.DefaultTTL.
func Open(ctx context.Context, path string, ttl time.Duration) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if ttl == 0 {
		ttl = ledger.DefaultTTL
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path)
	}
	dsn += "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps writers serialized and lets ":memory:" share a
	// single database.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, ttl: ttl, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put upserts a record and deletes expired rows.
func (s *Store) Put(ctx context.Context, record ledger.Record) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	now := s.now()
	record, err := ledger.Normalize(record, now)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger put: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if s.ttl > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM ledger_sessions WHERE created_at <= ?`,
			now.Add(-s.ttl).UnixMilli(),
		); err != nil {
			return fmt.Errorf("prune ledger: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_sessions (session_id, visitor_id, plan_id, email, amount_minor, currency, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   visitor_id = excluded.visitor_id,
		   plan_id = excluded.plan_id,
		   email = excluded.email,
		   amount_minor = excluded.amount_minor,
		   currency = excluded.currency,
		   created_at = excluded.created_at`,
		record.SessionID,
		record.VisitorID,
		record.PlanID,
		record.Email,
		record.AmountMinor,
		record.Currency,
		record.CreatedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("put ledger record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger put: %w", err)
	}
	return nil
}

// Latest returns the visitor's most recent unexpired record.
func (s *Store) Latest(ctx context.Context, visitorID string) (ledger.Record, bool, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return ledger.Record{}, false, nil
	}
	return s.queryOne(ctx,
		`SELECT session_id, visitor_id, plan_id, email, amount_minor, currency, created_at
		 FROM ledger_sessions
		 WHERE visitor_id = ? AND created_at > ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`,
		visitorID, s.cutoff(),
	)
}

// Get returns one unexpired record by session id.
func (s *Store) Get(ctx context.Context, sessionID string) (ledger.Record, bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ledger.Record{}, false, nil
	}
	return s.queryOne(ctx,
		`SELECT session_id, visitor_id, plan_id, email, amount_minor, currency, created_at
		 FROM ledger_sessions
		 WHERE session_id = ? AND created_at > ?`,
		sessionID, s.cutoff(),
	)
}

func (s *Store) cutoff() int64 {
	if s.ttl <= 0 {
		return 0
	}
	return s.now().Add(-s.ttl).UnixMilli()
}

func (s *Store) queryOne(ctx context.Context, query string, args ...any) (ledger.Record, bool, error) {
	if s == nil || s.sqlDB == nil {
		return ledger.Record{}, false, fmt.Errorf("storage is not configured")
	}
	var record ledger.Record
	var createdAt int64
	err := s.sqlDB.QueryRowContext(ctx, query, args...).Scan(
		&record.SessionID,
		&record.VisitorID,
		&record.PlanID,
		&record.Email,
		&record.AmountMinor,
		&record.Currency,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Record{}, false, nil
	}
	if err != nil {
		return ledger.Record{}, false, fmt.Errorf("query ledger record: %w", err)
	}
	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	return record, true, nil
}
