package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndMigrate(t *testing.T) {
	database, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, Migrate(database.DB))
	// The schema is idempotent; a second pass must not fail.
	require.NoError(t, Migrate(database.DB))

	for _, table := range []string{"games", "collection_memberships"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
		assert.Equal(t, table, name)
	}
}

func TestConnectRejectsUnusablePath(t *testing.T) {
	_, err := Connect("/nonexistent-dir/gamekeep.db")
	assert.Error(t, err)
}
