package repository

import (
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/gamekeep/gamekeep/internal/models"
)

// UnknownGameID is the sentinel a caller passes to Add when the game is a
// manual entry with no existing catalog row.
const UnknownGameID int64 = 0

// CollectionRepository owns the user↔game association and every query over a
// user's collection. All public operations are fail-soft: store errors are
// logged and converted to false or an empty list, never returned.
type CollectionRepository struct {
	db    *sql.DB
	games *GameRepository
	log   *zap.Logger
}

func NewCollectionRepository(db *sql.DB, games *GameRepository, log *zap.Logger) *CollectionRepository {
	return &CollectionRepository{db: db, games: games, log: log}
}

const selectGames = `
	SELECT g.id, g.title, g.developer, g.publisher, g.release_date, g.genre,
	       g.platform, g.completion_status, g.notes, g.cover_art
	FROM games g
	JOIN collection_memberships m ON m.game_id = g.id`

// ──────────────────── Add / Remove ────────────────────

// Add puts a game into the user's collection. A gameID of UnknownGameID means
// manual entry: the metadata row is inserted first and its fresh identifier
// used. A real gameID reuses the existing row after a duplicate-membership
// check. Metadata insert and membership insert run under one transaction; any
// failure rolls the whole sequence back.
func (r *CollectionRepository) Add(userID, gameID int64, meta models.GameRecord) bool {
	if userID <= 0 {
		r.log.Warn("add rejected: non-positive user id", zap.Int64("user_id", userID))
		return false
	}
	if gameID != UnknownGameID && r.UserHasGame(userID, gameID) {
		r.log.Debug("add rejected: game already in collection",
			zap.Int64("user_id", userID), zap.Int64("game_id", gameID))
		return false
	}

	tx, err := r.db.Begin()
	if err != nil {
		r.log.Error("add: begin transaction failed", zap.Error(err))
		return false
	}

	resolved := gameID
	if gameID == UnknownGameID {
		id, err := r.games.InsertTx(tx, &meta)
		if err != nil {
			tx.Rollback()
			r.log.Error("add: metadata insert failed", zap.Int64("user_id", userID), zap.Error(err))
			return false
		}
		resolved = id
	}

	if _, err := tx.Exec(`INSERT INTO collection_memberships (user_id, game_id) VALUES (?, ?)`,
		userID, resolved); err != nil {
		tx.Rollback()
		r.log.Error("add: membership insert failed",
			zap.Int64("user_id", userID), zap.Int64("game_id", resolved), zap.Error(err))
		return false
	}
	if err := tx.Commit(); err != nil {
		r.log.Error("add: commit failed", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	return true
}

// Remove deletes the user's membership row and then the game's metadata row.
// The metadata delete is unconditional, so a game shared by several users is
// removed for all of them; existing clients depend on that. The transaction
// commits whenever both deletes execute without error, but success is
// reported only when the metadata delete touched at least one row — a commit
// with zero affected rows still returns false.
func (r *CollectionRepository) Remove(userID, gameID int64) bool {
	if userID <= 0 {
		r.log.Warn("remove rejected: non-positive user id", zap.Int64("user_id", userID))
		return false
	}

	tx, err := r.db.Begin()
	if err != nil {
		r.log.Error("remove: begin transaction failed", zap.Error(err))
		return false
	}

	if _, err := tx.Exec(`DELETE FROM collection_memberships WHERE user_id = ? AND game_id = ?`,
		userID, gameID); err != nil {
		tx.Rollback()
		r.log.Error("remove: membership delete failed",
			zap.Int64("user_id", userID), zap.Int64("game_id", gameID), zap.Error(err))
		return false
	}

	res, err := tx.Exec(`DELETE FROM games WHERE id = ?`, gameID)
	if err != nil {
		tx.Rollback()
		r.log.Error("remove: metadata delete failed", zap.Int64("game_id", gameID), zap.Error(err))
		return false
	}

	if err := tx.Commit(); err != nil {
		r.log.Error("remove: commit failed", zap.Int64("game_id", gameID), zap.Error(err))
		return false
	}

	n, err := res.RowsAffected()
	if err != nil {
		r.log.Warn("remove: rows affected unavailable", zap.Error(err))
		return false
	}
	return n > 0
}

// ──────────────────── Queries ────────────────────

// Filter returns the user's collection narrowed by the given criteria. Each
// non-empty criteria set contributes a conjunctive IN predicate; empty sets
// impose no restriction, so empty criteria yield the full collection.
func (r *CollectionRepository) Filter(userID int64, c models.FilterCriteria) []models.GameRecord {
	if userID <= 0 {
		r.log.Warn("filter rejected: non-positive user id", zap.Int64("user_id", userID))
		return nil
	}

	conditions := []string{"m.user_id = ?"}
	args := []any{userID}
	for _, dim := range []struct {
		column string
		values []string
	}{
		{"g.genre", c.Genres},
		{"g.platform", c.Platforms},
		{"g.completion_status", c.Statuses},
	} {
		if len(dim.values) == 0 {
			continue
		}
		placeholders := make([]string, len(dim.values))
		for i, v := range dim.values {
			placeholders[i] = "?"
			args = append(args, v)
		}
		conditions = append(conditions, dim.column+" IN ("+strings.Join(placeholders, ",")+")")
	}

	query := selectGames + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY g.id`
	return r.queryGames(query, args...)
}

// Search returns the user's games whose title contains the substring,
// case-insensitively.
func (r *CollectionRepository) Search(userID int64, title string) []models.GameRecord {
	if userID <= 0 {
		r.log.Warn("search rejected: non-positive user id", zap.Int64("user_id", userID))
		return nil
	}
	query := selectGames + `
		WHERE m.user_id = ? AND LOWER(g.title) LIKE '%' || LOWER(?) || '%'
		ORDER BY g.id`
	return r.queryGames(query, userID, title)
}

// SortedCollection returns the user's collection ordered by the chosen
// dimension, optionally narrowed to titles containing titleFilter. Only
// Title, Release Date, and Platform are recognized; any other choice returns
// an empty list, never an unsorted default.
func (r *CollectionRepository) SortedCollection(userID int64, choice, titleFilter string) []models.GameRecord {
	if userID <= 0 {
		r.log.Warn("sort rejected: non-positive user id", zap.Int64("user_id", userID))
		return nil
	}

	var orderBy string
	switch choice {
	case models.SortTitle:
		orderBy = "LOWER(g.title)"
	case models.SortReleaseDate:
		orderBy = "g.release_date"
	case models.SortPlatform:
		orderBy = "LOWER(g.platform)"
	default:
		r.log.Warn("sort rejected: unsupported choice", zap.String("choice", choice))
		return nil
	}

	query := selectGames + ` WHERE m.user_id = ?`
	args := []any{userID}
	if titleFilter != "" {
		query += ` AND LOWER(g.title) LIKE '%' || LOWER(?) || '%'`
		args = append(args, titleFilter)
	}
	query += ` ORDER BY ` + orderBy
	return r.queryGames(query, args...)
}

// ──────────────────── Aggregation / existence probes ────────────────────

// DistinctPlatforms lists the distinct platform values across the user's
// collection. A non-empty exact value constrains the query to rows equal to
// it, confirming presence of that one value.
func (r *CollectionRepository) DistinctPlatforms(userID int64, exact string) []string {
	return r.distinctValues("platform", userID, exact)
}

// DistinctGenres is DistinctPlatforms for the genre dimension.
func (r *CollectionRepository) DistinctGenres(userID int64, exact string) []string {
	return r.distinctValues("genre", userID, exact)
}

// column is always one of the fixed dimension names above, never user input.
func (r *CollectionRepository) distinctValues(column string, userID int64, exact string) []string {
	if userID <= 0 {
		r.log.Warn("distinct "+column+" rejected: non-positive user id", zap.Int64("user_id", userID))
		return nil
	}

	query := `SELECT DISTINCT g.` + column + `
		FROM games g
		JOIN collection_memberships m ON m.game_id = g.id
		WHERE m.user_id = ?`
	args := []any{userID}
	if exact != "" {
		query += ` AND g.` + column + ` = ?`
		args = append(args, exact)
	}
	query += ` ORDER BY g.` + column

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Error("distinct "+column+" query failed", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			r.log.Error("distinct "+column+" scan failed", zap.Error(err))
			return nil
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("distinct "+column+" rows failed", zap.Error(err))
		return nil
	}
	return out
}

// UserHasGame reports whether the user already holds a membership for the
// game. Failures read as "no membership".
func (r *CollectionRepository) UserHasGame(userID, gameID int64) bool {
	if userID <= 0 {
		return false
	}
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM collection_memberships WHERE user_id = ? AND game_id = ?)`,
		userID, gameID).Scan(&exists)
	if err != nil {
		r.log.Warn("membership probe failed",
			zap.Int64("user_id", userID), zap.Int64("game_id", gameID), zap.Error(err))
		return false
	}
	return exists
}

// MembershipExistsByTitle reports whether the user's collection contains a
// game with exactly this title (case-insensitive). It exposes existence only;
// callers wanting the identifier must go through the query operations.
func (r *CollectionRepository) MembershipExistsByTitle(userID int64, title string) bool {
	if userID <= 0 {
		return false
	}
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM collection_memberships m
			JOIN games g ON g.id = m.game_id
			WHERE m.user_id = ? AND LOWER(g.title) = LOWER(?))`,
		userID, title).Scan(&exists)
	if err != nil {
		r.log.Warn("title probe failed", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	return exists
}

func (r *CollectionRepository) queryGames(query string, args ...any) []models.GameRecord {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Error("collection query failed", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var out []models.GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			r.log.Error("collection scan failed", zap.Error(err))
			return nil
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("collection rows failed", zap.Error(err))
		return nil
	}
	return out
}
