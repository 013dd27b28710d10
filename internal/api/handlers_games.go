package api

import (
	"net/http"

	"github.com/gamekeep/gamekeep/internal/httputil"
)

type updateGameRequest struct {
	Field string `json:"field" validate:"required,oneof=title developer publisher release_date genre platform completion_status notes cover_art"`
	Value string `json:"value"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_GAME_ID", "game id must be numeric")
		return
	}
	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "GAME_NOT_FOUND", "game not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, game)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(r)
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_GAME_ID", "game id must be numeric")
		return
	}

	var req updateGameRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", validationMessage(err))
		return
	}

	if err := s.gameRepo.UpdateField(gameID, req.Field, req.Value); err != nil {
		httputil.WriteError(w, http.StatusNotFound, "UPDATE_FAILED", "game could not be updated")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"updated": true})
}
