package models

import (
	"sort"
	"strings"
)

// SortGames orders an already-materialized list in place and returns it.
// Title and Alphabetical compare titles case-insensitively, Release Date
// sorts ascending with dateless entries after all dated ones, Platform
// compares platforms case-insensitively. Any other choice leaves the list in
// its original order; this intentionally differs from the server-side sort,
// which refuses unrecognized choices outright.
func SortGames(games []GameRecord, choice string) []GameRecord {
	switch choice {
	case SortTitle, SortAlphabetical:
		sort.SliceStable(games, func(i, j int) bool {
			return strings.ToLower(games[i].Title) < strings.ToLower(games[j].Title)
		})
	case SortReleaseDate:
		sort.SliceStable(games, func(i, j int) bool {
			a, b := games[i].ReleaseDate, games[j].ReleaseDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			}
			return a.Before(*b)
		})
	case SortPlatform:
		sort.SliceStable(games, func(i, j int) bool {
			return strings.ToLower(games[i].Platform) < strings.ToLower(games[j].Platform)
		})
	}
	return games
}
