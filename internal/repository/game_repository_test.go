package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamekeep/gamekeep/internal/models"
)

func TestInsertAssignsIdentifier(t *testing.T) {
	games, _, _ := newTestRepos(t)

	g := sampleGame("Halo", "Shooter", "Xbox", models.StatusNotStarted)
	id, err := games.Insert(&g)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
	assert.Equal(t, id, g.ID)

	g2 := sampleGame("Myst", "Puzzle", "PC", models.StatusCompleted)
	id2, err := games.Insert(&g2)
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}

func TestInsertRoundTripsReleaseDate(t *testing.T) {
	games, _, _ := newTestRepos(t)

	g := sampleGame("Chrono Trigger", "RPG", "SNES", models.StatusCompleted)
	g.ReleaseDate = mustDate(t, "1995-03-11")
	id, err := games.Insert(&g)
	require.NoError(t, err)

	got, err := games.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got.ReleaseDate)
	assert.Equal(t, "1995-03-11", got.ReleaseDate.Format(models.ReleaseDateLayout))
	assert.Equal(t, models.StatusCompleted, got.CompletionStatus)
}

func TestGetByIDDegradesIrregularReleaseDates(t *testing.T) {
	games, _, conn := newTestRepos(t)

	insert := func(release any) int64 {
		res, err := conn.Exec(`INSERT INTO games (title, release_date) VALUES (?, ?)`, "x", release)
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		return id
	}

	for _, release := range []any{nil, "", "not-a-date", "1995-13-40", "95-03-11"} {
		got, err := games.GetByID(insert(release))
		require.NoError(t, err)
		assert.Nil(t, got.ReleaseDate, "release %v should degrade to absent", release)
	}
}

func TestExistsIsFailSoft(t *testing.T) {
	games, _, conn := newTestRepos(t)

	g := sampleGame("Halo", "Shooter", "Xbox", models.StatusNotStarted)
	id, err := games.Insert(&g)
	require.NoError(t, err)

	assert.True(t, games.Exists(id))
	assert.False(t, games.Exists(id+100))

	require.NoError(t, conn.Close())
	assert.False(t, games.Exists(id), "a failed probe reads as absent")
}

func TestUpdateField(t *testing.T) {
	games, _, _ := newTestRepos(t)

	g := sampleGame("Halo", "Shooter", "Xbox", models.StatusNotStarted)
	id, err := games.Insert(&g)
	require.NoError(t, err)

	require.NoError(t, games.UpdateField(id, "completion_status", string(models.StatusPlaying)))
	require.NoError(t, games.UpdateField(id, "notes", "split-screen run"))

	got, err := games.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaying, got.CompletionStatus)
	assert.Equal(t, "split-screen run", got.Notes)

	assert.Error(t, games.UpdateField(id, "id", "7"), "non-whitelisted column is rejected")
	assert.Error(t, games.UpdateField(id+100, "notes", "x"), "missing row is reported")
}
