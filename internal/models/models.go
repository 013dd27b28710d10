package models

import "time"

// ──────────────────── Enums ────────────────────

type CompletionStatus string

const (
	StatusNotStarted CompletionStatus = "Not Started"
	StatusPlaying    CompletionStatus = "Playing"
	StatusCompleted  CompletionStatus = "Completed"
)

// Sort choices accepted by the collection sort operations. SortAlphabetical
// is an alias for SortTitle honored by the in-memory sort only.
const (
	SortTitle        = "Title"
	SortAlphabetical = "Alphabetical"
	SortReleaseDate  = "Release Date"
	SortPlatform     = "Platform"
)

// ReleaseDateLayout is the only accepted stored form for release dates.
const ReleaseDateLayout = "2006-01-02"

// ──────────────────── Game ────────────────────

type GameRecord struct {
	ID               int64            `json:"id" db:"id"`
	Title            string           `json:"title" db:"title"`
	Developer        string           `json:"developer" db:"developer"`
	Publisher        string           `json:"publisher" db:"publisher"`
	ReleaseDate      *time.Time       `json:"release_date,omitempty" db:"release_date"`
	Genre            string           `json:"genre" db:"genre"`
	Platform         string           `json:"platform" db:"platform"`
	CompletionStatus CompletionStatus `json:"completion_status" db:"completion_status"`
	Notes            string           `json:"notes" db:"notes"`
	CoverArtPath     string           `json:"cover_art,omitempty" db:"cover_art"`
}

// CollectionMembership links a user to a game they have added. It is the only
// durable association between the two; deleting it removes the game from the
// user's collection.
type CollectionMembership struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`
	GameID int64 `json:"game_id" db:"game_id"`
}

// FilterCriteria holds the three optional filter dimensions. An empty slice
// imposes no restriction on its dimension; within a dimension values combine
// with OR, across dimensions with AND.
type FilterCriteria struct {
	Genres    []string
	Platforms []string
	Statuses  []string
}

// ParseReleaseDate interprets a stored release date string. Only a strict
// YYYY-MM-DD value yields a date; empty strings, nulls scanned as "", and
// malformed values all degrade to nil instead of an error.
func ParseReleaseDate(s string) *time.Time {
	if len(s) != len(ReleaseDateLayout) {
		return nil
	}
	t, err := time.Parse(ReleaseDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
