// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite; no C compiler is needed, and ":memory:"
// databases make every test start from an empty schema.
//
// CONNECTION SETTINGS:
// SQLite PRAGMAs are per connection, and database/sql hands out connections
// from a pool. Running "PRAGMA foreign_keys=ON" once would only reach the
// connection that happened to run it. Passing the pragmas in the DSN makes the
// driver apply them to every connection it opens.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	// Also registers the "sqlite" driver with database/sql.
	sqlitedriver "modernc.org/sqlite"

	"github.com/sakif/fyyur/internal/apperror"
)

const memoryPath = ":memory:"

// SQLite's built-in lower() folds ASCII only, so "CAFÉ" would never match
// "café". fold() lowercases with Go's Unicode tables instead.
func init() {
	sqlitedriver.MustRegisterDeterministicScalarFunction("fold", 1, fold)
}

func fold(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// DB wraps a sql.DB connection pool and provides repository methods for
// venues, artists and shows.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/fyyur.db" → file-based database (persistent)
//   - ":memory:"      → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every new connection to ":memory:" is a brand new, empty database.
	// Pin the pool to one connection so all statements see the same schema.
	if dbPath == memoryPath {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// dsn also sets _txlock=immediate: a write transaction takes the write
// lock at BEGIN, where busy_timeout applies. A deferred transaction that
// reads first and then writes gets SQLITE_BUSY with no retry if another
// writer committed in between.
func dsn(dbPath string) string {
	params := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	if dbPath != memoryPath {
		// WAL lets readers keep going while a write transaction is open.
		params += "&_pragma=journal_mode(WAL)"
	}
	return dbPath + "?" + params
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable. Used by the health check.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// querier is satisfied by both *sql.DB and *sql.Tx, so read helpers can run
// inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn inside one transaction.
//
// TRANSACTION LIFECYCLE:
//  1. BEGIN
//  2. fn performs the mutations, using ONLY tx (never db.conn: with a
//     single-connection pool that would wait forever for tx to finish)
//  3. COMMIT on success, ROLLBACK on any error
//
// Errors that are already *apperror.AppError (NotFound, ValidationFailed)
// pass through untouched; anything else becomes apperror.Storage.
func (db *DB) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Storage(op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperror.Storage(op, err)
	}

	if err = tx.Commit(); err != nil {
		return apperror.Storage(op, err)
	}
	return nil
}

// migrate creates the schema.
//
// CREATE TABLE IF NOT EXISTS is idempotent, so this runs on every start.
// Foreign keys have no ON DELETE clause: a venue or artist that still has
// shows cannot be removed by the store.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS venues (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			city                TEXT NOT NULL DEFAULT '',
			state               TEXT NOT NULL DEFAULT '',
			address             TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			image_link          TEXT NOT NULL DEFAULT '',
			website             TEXT NOT NULL DEFAULT '',
			facebook_link       TEXT NOT NULL DEFAULT '',
			seeking_talent      INTEGER NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_venues_city_state ON venues(city, state);
	`)
	if err != nil {
		return fmt.Errorf("creating venues table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS artists (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			city                TEXT NOT NULL DEFAULT '',
			state               TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			image_link          TEXT NOT NULL DEFAULT '',
			website             TEXT NOT NULL DEFAULT '',
			facebook_link       TEXT NOT NULL DEFAULT '',
			seeking_venue       INTEGER NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating artists table: %w", err)
	}

	// Genres are an ordered list; position keeps the submitted order.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS venue_genres (
			venue_id TEXT NOT NULL REFERENCES venues(id),
			position INTEGER NOT NULL,
			genre    TEXT NOT NULL CHECK (genre <> ''),
			PRIMARY KEY (venue_id, position)
		);
		CREATE TABLE IF NOT EXISTS artist_genres (
			artist_id TEXT NOT NULL REFERENCES artists(id),
			position  INTEGER NOT NULL,
			genre     TEXT NOT NULL CHECK (genre <> ''),
			PRIMARY KEY (artist_id, position)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating genre tables: %w", err)
	}

	// start_time is TEXT in model.TimeLayout (UTC, fixed width), so the
	// comparisons in the show queries are plain string comparisons.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS shows (
			id         TEXT PRIMARY KEY,
			venue_id   TEXT NOT NULL REFERENCES venues(id),
			artist_id  TEXT NOT NULL REFERENCES artists(id),
			start_time TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_shows_venue_start ON shows(venue_id, start_time);
		CREATE INDEX IF NOT EXISTS idx_shows_artist_start ON shows(artist_id, start_time);
	`)
	if err != nil {
		return fmt.Errorf("creating shows table: %w", err)
	}

	return nil
}
