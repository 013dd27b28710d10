package repository

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gamekeep/gamekeep/internal/models"
)

// GameRepository owns the global catalog of game metadata rows. It never
// knows which users reference a game; memberships are the collection
// repository's concern.
type GameRepository struct {
	db  *sql.DB
	log *zap.Logger
}

func NewGameRepository(db *sql.DB, log *zap.Logger) *GameRepository {
	return &GameRepository{db: db, log: log}
}

const gameColumns = `id, title, developer, publisher, release_date, genre, platform, completion_status, notes, cover_art`

// execer is satisfied by *sql.DB and *sql.Tx so metadata writes can run
// either standalone or inside a collection transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Insert stores a new metadata row and returns its assigned identifier.
// An insert that affects no rows, or yields no identifier, is reported as an
// error; the game was not created.
func (r *GameRepository) Insert(g *models.GameRecord) (int64, error) {
	return r.insert(r.db, g)
}

// InsertTx is Insert scoped to an open transaction.
func (r *GameRepository) InsertTx(tx *sql.Tx, g *models.GameRecord) (int64, error) {
	return r.insert(tx, g)
}

func (r *GameRepository) insert(q execer, g *models.GameRecord) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO games (title, developer, publisher, release_date, genre,
		                   platform, completion_status, notes, cover_art)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Title, g.Developer, g.Publisher, releaseDateValue(g.ReleaseDate),
		g.Genre, g.Platform, g.CompletionStatus, g.Notes, g.CoverArtPath)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("game insert affected no rows")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("no identifier after game insert: %w", err)
	}
	g.ID = id
	return id, nil
}

// Exists reports whether a metadata row with the identifier exists. Any
// access failure is logged and treated as "does not exist".
func (r *GameRepository) Exists(id int64) bool {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM games WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		r.log.Warn("game existence probe failed", zap.Int64("game_id", id), zap.Error(err))
		return false
	}
	return exists
}

func (r *GameRepository) GetByID(id int64) (*models.GameRecord, error) {
	g, err := scanGame(r.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	return &g, nil
}

// Columns a caller may target with UpdateField. Maps the public field name to
// the schema column so arbitrary input never reaches the SQL text.
var updatableGameColumns = map[string]string{
	"title":             "title",
	"developer":         "developer",
	"publisher":         "publisher",
	"release_date":      "release_date",
	"genre":             "genre",
	"platform":          "platform",
	"completion_status": "completion_status",
	"notes":             "notes",
	"cover_art":         "cover_art",
}

// UpdateField mutates a single metadata column in place. Edits are targeted;
// rows are never versioned or rewritten wholesale.
func (r *GameRepository) UpdateField(id int64, field, value string) error {
	col, ok := updatableGameColumns[field]
	if !ok {
		return fmt.Errorf("field %q is not updatable", field)
	}
	res, err := r.db.Exec(`UPDATE games SET `+col+` = ? WHERE id = ?`, value, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("game not found")
	}
	return nil
}

// scanGame maps a raw row onto a GameRecord. The release date column is
// free text at the storage level; anything that is not a strict YYYY-MM-DD
// value comes back as an absent date rather than a scan error.
func scanGame(s rowScanner) (models.GameRecord, error) {
	var g models.GameRecord
	var release sql.NullString
	if err := s.Scan(&g.ID, &g.Title, &g.Developer, &g.Publisher, &release,
		&g.Genre, &g.Platform, &g.CompletionStatus, &g.Notes, &g.CoverArtPath); err != nil {
		return g, err
	}
	g.ReleaseDate = models.ParseReleaseDate(release.String)
	return g, nil
}

func releaseDateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(models.ReleaseDateLayout)
}
