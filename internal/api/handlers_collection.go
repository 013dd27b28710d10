package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gamekeep/gamekeep/internal/httputil"
	"github.com/gamekeep/gamekeep/internal/models"
	"github.com/gamekeep/gamekeep/internal/repository"
)

type addGameRequest struct {
	// GameID of 0 means manual entry; the metadata fields below then describe
	// the new game. A real GameID reuses the existing catalog row and the
	// metadata fields are ignored.
	GameID           int64  `json:"game_id"`
	Title            string `json:"title" validate:"required"`
	Developer        string `json:"developer"`
	Publisher        string `json:"publisher"`
	ReleaseDate      string `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Genre            string `json:"genre"`
	Platform         string `json:"platform"`
	CompletionStatus string `json:"completion_status" validate:"omitempty,oneof='Not Started' Playing Completed"`
	Notes            string `json:"notes"`
	CoverArt         string `json:"cover_art"`
}

func (s *Server) handleAddGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "user id must be numeric")
		return
	}

	var req addGameRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	// Manual entries carry the metadata, so only they are validated here.
	if req.GameID == repository.UnknownGameID {
		if err := s.validate.Struct(&req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", validationMessage(err))
			return
		}
	}

	status := models.CompletionStatus(req.CompletionStatus)
	if status == "" {
		status = models.StatusNotStarted
	}
	meta := models.GameRecord{
		Title:            req.Title,
		Developer:        req.Developer,
		Publisher:        req.Publisher,
		ReleaseDate:      models.ParseReleaseDate(req.ReleaseDate),
		Genre:            req.Genre,
		Platform:         req.Platform,
		CompletionStatus: status,
		Notes:            req.Notes,
		CoverArtPath:     req.CoverArt,
	}

	if !s.collectionRepo.Add(userID, req.GameID, meta) {
		httputil.WriteError(w, http.StatusConflict, "ADD_FAILED", "game could not be added to the collection")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]bool{"added": true})
}

func (s *Server) handleRemoveGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "user id must be numeric")
		return
	}
	gameID, ok := gameIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_GAME_ID", "game id must be numeric")
		return
	}

	if !s.collectionRepo.Remove(userID, gameID) {
		httputil.WriteError(w, http.StatusNotFound, "REMOVE_FAILED", "game could not be removed from the collection")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (s *Server) handleFilterCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "user id must be numeric")
		return
	}

	q := r.URL.Query()
	criteria := models.FilterCriteria{
		Genres:    q["genre"],
		Platforms: q["platform"],
		Statuses:  q["status"],
	}
	httputil.WriteJSON(w, http.StatusOK, gameList(s.collectionRepo.Filter(userID, criteria)))
}

func (s *Server) handleSearchCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "user id must be numeric")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, gameList(s.collectionRepo.Search(userID, r.URL.Query().Get("q"))))
}

func (s *Server) handleSortedCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "user id must be numeric")
		return
	}
	q := r.URL.Query()
	// An unsupported "by" value comes back as an empty list by contract.
	httputil.WriteJSON(w, http.StatusOK,
		gameList(s.collectionRepo.SortedCollection(userID, q.Get("by"), q.Get("q"))))
}

func (s *Server) handleDistinctPlatforms(w http.ResponseWriter, r *http.Request) {
	s.respondDistinct(w, r, s.collectionRepo.DistinctPlatforms)
}

func (s *Server) handleDistinctGenres(w http.ResponseWriter, r *http.Request) {
	s.respondDistinct(w, r, s.collectionRepo.DistinctGenres)
}

func (s *Server) respondDistinct(w http.ResponseWriter, r *http.Request, query func(int64, string) []string) {
	userID, ok := userIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "user id must be numeric")
		return
	}
	values := query(userID, r.URL.Query().Get("value"))
	if values == nil {
		values = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, values)
}

// handleContains answers existence probes: ?title= checks membership by exact
// title, ?game_id= checks membership by identifier. Both return only a bool.
func (s *Server) handleContains(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "user id must be numeric")
		return
	}

	q := r.URL.Query()
	if title := q.Get("title"); title != "" {
		httputil.WriteJSON(w, http.StatusOK,
			map[string]bool{"exists": s.collectionRepo.MembershipExistsByTitle(userID, title)})
		return
	}
	if idStr := q.Get("game_id"); idStr != "" {
		gameID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "INVALID_GAME_ID", "game_id must be numeric")
			return
		}
		httputil.WriteJSON(w, http.StatusOK,
			map[string]bool{"exists": s.collectionRepo.UserHasGame(userID, gameID)})
		return
	}
	httputil.WriteError(w, http.StatusBadRequest, "MISSING_PROBE", "title or game_id parameter required")
}

// gameList normalizes the engine's nil fail-soft result to an empty slice so
// callers always see a JSON array.
func gameList(games []models.GameRecord) []models.GameRecord {
	if games == nil {
		return []models.GameRecord{}
	}
	return games
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request"
	}
	var details strings.Builder
	for _, fieldErr := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fieldErr.Tag() {
		case "required":
			details.WriteString(fieldErr.Field() + " is required")
		case "datetime":
			details.WriteString(fieldErr.Field() + " must be YYYY-MM-DD")
		case "oneof":
			details.WriteString(fieldErr.Field() + " must be one of: " + fieldErr.Param())
		default:
			details.WriteString(fieldErr.Field() + " is invalid")
		}
	}
	return details.String()
}
