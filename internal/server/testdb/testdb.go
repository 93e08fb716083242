// Package testdb opens throwaway in-memory SQLite databases carrying the
// notekeeper schema, for tests that need a real store.
package testdb

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Schema mirrors the PostgreSQL migration in SQLite dialect.
const Schema = `
CREATE TABLE users (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE CHECK (username <> ''),
    email    TEXT NOT NULL UNIQUE CHECK (email <> '')
);

CREATE TABLE notes (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    title   VARCHAR(200) NOT NULL,
    content TEXT,
    user_id INTEGER REFERENCES users (id)
);

CREATE TABLE links (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    url     TEXT NOT NULL,
    note_id INTEGER REFERENCES notes (id) ON DELETE SET NULL
);

CREATE TABLE media (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path TEXT NOT NULL,
    note_id   INTEGER REFERENCES notes (id) ON DELETE SET NULL
);
`

// Open returns a fresh in-memory database with the schema applied and
// foreign keys enforced. The pool is capped at one connection so every
// caller sees the same in-memory database; it is closed on test cleanup.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)
	_, err = db.Exec(Schema)
	require.NoError(t, err)

	return db
}

// SeedUser inserts a user with an explicit id.
func SeedUser(t testing.TB, db *sql.DB, id int64, username, email string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, username, email) VALUES ($1, $2, $3)`, id, username, email)
	require.NoError(t, err)
}

// OpenSeeded is Open plus the default user (id 1).
func OpenSeeded(t testing.TB) *sql.DB {
	t.Helper()
	db := Open(t)
	SeedUser(t, db, 1, "testuser", "test@test.com")
	return db
}
