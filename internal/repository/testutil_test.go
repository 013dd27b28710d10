package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/gamekeep/gamekeep/internal/db"
	"github.com/gamekeep/gamekeep/internal/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema
// applied. The pool is capped at one connection so the memory database is not
// split across pool members.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func newTestRepos(t *testing.T) (*GameRepository, *CollectionRepository, *sql.DB) {
	t.Helper()
	conn := setupTestDB(t)
	games := NewGameRepository(conn, zap.NewNop())
	collections := NewCollectionRepository(conn, games, zap.NewNop())
	return games, collections, conn
}

func countRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d := models.ParseReleaseDate(s)
	require.NotNil(t, d, "test date %q must parse", s)
	return d
}

func sampleGame(title, genre, platform string, status models.CompletionStatus) models.GameRecord {
	return models.GameRecord{
		Title:            title,
		Developer:        "Sample Dev",
		Publisher:        "Sample Pub",
		Genre:            genre,
		Platform:         platform,
		CompletionStatus: status,
	}
}
