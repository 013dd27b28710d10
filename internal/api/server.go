package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gamekeep/gamekeep/internal/httputil"
	"github.com/gamekeep/gamekeep/internal/repository"
)

// Server is the HTTP surface over the collection engine. It holds one
// repository per concern and a ServeMux; handlers translate between the JSON
// envelope and the engine's primitive inputs and never expose store errors.
type Server struct {
	log            *zap.Logger
	gameRepo       *repository.GameRepository
	collectionRepo *repository.CollectionRepository
	validate       *validator.Validate
	router         *http.ServeMux
}

func NewServer(log *zap.Logger, games *repository.GameRepository, collections *repository.CollectionRepository) *Server {
	s := &Server{
		log:            log,
		gameRepo:       games,
		collectionRepo: collections,
		validate:       validator.New(),
		router:         http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("GET /api/health", s.handleHealth)

	s.router.HandleFunc("POST /api/collection/{userID}/games", s.handleAddGame)
	s.router.HandleFunc("DELETE /api/collection/{userID}/games/{gameID}", s.handleRemoveGame)
	s.router.HandleFunc("GET /api/collection/{userID}/games", s.handleFilterCollection)
	s.router.HandleFunc("GET /api/collection/{userID}/search", s.handleSearchCollection)
	s.router.HandleFunc("GET /api/collection/{userID}/sorted", s.handleSortedCollection)
	s.router.HandleFunc("GET /api/collection/{userID}/platforms", s.handleDistinctPlatforms)
	s.router.HandleFunc("GET /api/collection/{userID}/genres", s.handleDistinctGenres)
	s.router.HandleFunc("GET /api/collection/{userID}/contains", s.handleContains)

	s.router.HandleFunc("GET /api/games/{gameID}", s.handleGetGame)
	s.router.HandleFunc("PATCH /api/games/{gameID}", s.handleUpdateGame)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	start := time.Now()
	s.router.ServeHTTP(w, r)
	s.log.Debug("request handled",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("elapsed", time.Since(start)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// userIDFromPath parses the {userID} path segment. Non-numeric values are a
// caller error; non-positive values are passed through so the engine applies
// its own rejection contract.
func userIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func gameIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("gameID"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
