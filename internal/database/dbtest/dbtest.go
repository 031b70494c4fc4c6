// Package dbtest provides an in-memory SQLite store with the portfolio
// schema for tests.
package dbtest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/deppfellow/portfolio-api/internal/database"
)

// Schema is the SQLite rendition of the tables the API serves.
const Schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE Page (
	name        TEXT PRIMARY KEY,
	pretty_name TEXT NOT NULL,
	hidden      BOOLEAN NOT NULL DEFAULT 0,
	body        TEXT
);

CREATE TABLE Post (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	title   TEXT NOT NULL,
	slug    TEXT NOT NULL UNIQUE,
	hidden  BOOLEAN NOT NULL DEFAULT 0,
	body    TEXT NOT NULL,
	created DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE Project (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL,
	deployed_url TEXT,
	github_url   TEXT,
	is_scrap     BOOLEAN NOT NULL DEFAULT 0,
	published    BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE Image (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	description TEXT,
	static_url  TEXT NOT NULL,
	created     DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE Category (
	name TEXT PRIMARY KEY
);

CREATE TABLE Technology (
	name  TEXT PRIMARY KEY,
	color TEXT
);

CREATE TABLE ProjectTechnology (
	project_id      INTEGER NOT NULL REFERENCES Project (id) ON DELETE CASCADE,
	technology_name TEXT NOT NULL REFERENCES Technology (name) ON UPDATE CASCADE ON DELETE CASCADE,
	PRIMARY KEY (project_id, technology_name)
);

CREATE TABLE PostCategory (
	post_id       INTEGER NOT NULL REFERENCES Post (id) ON DELETE CASCADE,
	category_name TEXT NOT NULL REFERENCES Category (name) ON UPDATE CASCADE ON DELETE CASCADE,
	PRIMARY KEY (post_id, category_name)
);

CREATE TABLE ProjectImage (
	project_id INTEGER NOT NULL REFERENCES Project (id) ON DELETE CASCADE,
	image_id   INTEGER NOT NULL REFERENCES Image (id) ON DELETE CASCADE,
	PRIMARY KEY (project_id, image_id)
);

CREATE TABLE PostImage (
	post_id  INTEGER NOT NULL REFERENCES Post (id) ON DELETE CASCADE,
	image_id INTEGER NOT NULL REFERENCES Image (id) ON DELETE CASCADE,
	PRIMARY KEY (post_id, image_id)
);
`

// NewSQLite opens an in-memory SQLite store, applies Schema and closes the
// store when the test ends.
func NewSQLite(t testing.TB) *database.SQLStore {
	t.Helper()

	store, err := database.NewSQLStore(context.Background(), config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    ":memory:",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	for _, stmt := range strings.Split(Schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := store.DB.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	return store
}

// Exec runs raw SQL against the store, for seeding.
func Exec(t testing.TB, store *database.SQLStore, sql string, args ...any) {
	t.Helper()
	_, err := store.DB.Exec(sql, args...)
	require.NoError(t, err, sql)
}

// Count returns the number of rows in table.
func Count(t testing.TB, store *database.SQLStore, table string) int {
	t.Helper()
	var n int
	require.NoError(t, store.DB.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
