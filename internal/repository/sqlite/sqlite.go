// Package sqlite implements the repository interfaces on SQLite.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// SQLite: no C compiler needed, works everywhere Go works. An embedded
// database is a good fit here: the whole app is one binary plus one file.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and hands out one typed sub-repository
// per entity (Users, Links, ...). Construct it once in the composition root,
// Close it on shutdown.
//
// WHY SUB-REPOSITORIES AND NOT METHODS ON DB?
// Five entities each want Create/GetByID/Update. Go has no method
// overloading, so those names can exist only once per receiver type. A small
// typed repo per entity keeps the natural names and lets each one satisfy
// exactly one interface from the repository package.
type DB struct {
	conn *sql.DB
}

// Users returns the user repository backed by this connection pool.
func (db *DB) Users() *UserRepo { return &UserRepo{conn: db.conn} }

// Links returns the link repository.
func (db *DB) Links() *LinkRepo { return &LinkRepo{conn: db.conn} }

// Themes returns the theme repository.
func (db *DB) Themes() *ThemeRepo { return &ThemeRepo{conn: db.conn} }

// PageViews returns the page-view repository.
func (db *DB) PageViews() *PageViewRepo { return &PageViewRepo{conn: db.conn} }

// Contacts returns the contact-submission repository.
func (db *DB) Contacts() *ContactRepo { return &ContactRepo{conn: db.conn} }

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests for a throwaway in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Fail fast on a bad path or permissions; sql.Open alone is lazy and
	// would only surface the problem on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// One connection for the whole pool. SQLite allows a single writer
	// anyway, the PRAGMAs below are per-connection, and ":memory:" gives
	// every new connection its own empty database.
	conn.SetMaxOpenConns(1)

	// WAL lets reads proceed while a write is in flight. Without it SQLite
	// locks the whole database for every write, which serializes the API.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. Links, themes and page
	// views all reference users(id), so turn enforcement on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New; it
// flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates all tables. CREATE TABLE IF NOT EXISTS keeps this
// idempotent, so it's safe to run on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			bio           TEXT NOT NULL DEFAULT '',
			profile_photo TEXT NOT NULL DEFAULT '',
			plan          TEXT NOT NULL DEFAULT 'free',
			created_at    DATETIME NOT NULL,
			updated_at    DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// AUTOINCREMENT (not plain INTEGER PRIMARY KEY) guarantees ids are never
	// reused after a delete, so link ids are strictly increasing for the
	// lifetime of the database, across all users.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS links (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL REFERENCES users(id),
			title      TEXT NOT NULL,
			url        TEXT NOT NULL,
			position   INTEGER NOT NULL DEFAULT 0,
			visible    INTEGER NOT NULL DEFAULT 1,
			clicks     INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_links_user_id ON links(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating links table: %w", err)
	}

	// One theme row per user, so user_id is the primary key.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS themes (
			user_id      TEXT PRIMARY KEY REFERENCES users(id),
			background   TEXT NOT NULL,
			button_style TEXT NOT NULL,
			text_color   TEXT NOT NULL,
			accent_color TEXT NOT NULL,
			created_at   DATETIME NOT NULL,
			updated_at   DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating themes table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS page_views (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL REFERENCES users(id),
			username   TEXT NOT NULL,
			timestamp  DATETIME NOT NULL,
			user_agent TEXT NOT NULL DEFAULT '',
			referrer   TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_page_views_user_id ON page_views(user_id, timestamp);
	`)
	if err != nil {
		return fmt.Errorf("creating page_views table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS contact_submissions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL,
			message      TEXT NOT NULL,
			status       TEXT NOT NULL DEFAULT 'new',
			submitted_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating contact_submissions table: %w", err)
	}

	return nil
}
