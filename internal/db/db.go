package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string

	now func() time.Time
}

// OpenDB opens (or creates) a SQLite database with WAL mode and foreign keys
// enabled and makes sure the wiki tables exist. Use ":memory:" for tests.
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// PRAGMAs are per connection and ":memory:" databases are per connection
	// too, so keep exactly one.
	conn.SetMaxOpenConns(1)

	if path != ":memory:" {
		// Enable WAL mode for concurrent readers from other processes
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}

	// Comments and reactions cascade through foreign keys
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &DB{conn: conn, Path: path, now: time.Now}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// SetClock replaces the time source used for created_at/updated_at.
func (d *DB) SetClock(now func() time.Time) {
	d.now = now
}

func (d *DB) nowMillis() int64 {
	return d.now().UnixMilli()
}

func migrate(conn *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			content       TEXT,
			description   TEXT,
			icon          TEXT,
			parent_id     TEXT,
			sort_order    INTEGER NOT NULL DEFAULT 0,
			show_children INTEGER NOT NULL DEFAULT 0,
			action_label  TEXT,
			scope_id      TEXT,
			owner_id      TEXT NOT NULL,
			created_at    INTEGER NOT NULL,
			updated_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS pages_parent_idx ON pages(parent_id)`,
		`CREATE INDEX IF NOT EXISTS pages_scope_idx ON pages(scope_id)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			page_id    TEXT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			owner_id   TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS comments_page_idx ON comments(page_id)`,
		`CREATE TABLE IF NOT EXISTS reactions (
			id         TEXT PRIMARY KEY,
			comment_id TEXT NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
			emoji      TEXT NOT NULL,
			owner_id   TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS reactions_comment_idx ON reactions(comment_id)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS pages_fts USING fts5(
			title, description, content,
			content='pages', content_rowid='rowid'
		)`,
		`CREATE TRIGGER IF NOT EXISTS pages_fts_insert AFTER INSERT ON pages BEGIN
			INSERT INTO pages_fts(rowid, title, description, content)
			VALUES (new.rowid, new.title, new.description, new.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS pages_fts_delete AFTER DELETE ON pages BEGIN
			INSERT INTO pages_fts(pages_fts, rowid, title, description, content)
			VALUES ('delete', old.rowid, old.title, old.description, old.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS pages_fts_update AFTER UPDATE ON pages BEGIN
			INSERT INTO pages_fts(pages_fts, rowid, title, description, content)
			VALUES ('delete', old.rowid, old.title, old.description, old.content);
			INSERT INTO pages_fts(rowid, title, description, content)
			VALUES (new.rowid, new.title, new.description, new.content);
		END`,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, c := range stmt {
		if c == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
