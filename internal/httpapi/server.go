// Package httpapi wires the voting and registration services to the REST
// surface the radio player consumes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"radiocalico/internal/app"
	"radiocalico/internal/app/votes"
	"radiocalico/internal/store"
)

// VoteService captures the voting operations needed by the HTTP handlers.
type VoteService interface {
	VoteInfo(ctx context.Context, artist, title string, album *string) (votes.Info, error)
	Submit(ctx context.Context, songID int64, userID string, voteType int) (votes.Result, error)
	UserVote(ctx context.Context, songID int64, userID string) (*int, error)
}

// UserService captures the registration operations needed by the HTTP
// handlers.
type UserService interface {
	Register(ctx context.Context, name, email string) (store.User, error)
	Recent(ctx context.Context) ([]store.User, error)
}

// Pinger reports whether the storage substrate is reachable. *sql.DB
// satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	votes     VoteService
	users     UserService
	db        Pinger
	staticDir string
}

// New configures a Server over the given services. staticDir, when
// non-empty, is served for non-API paths so the bundled player frontend can
// be hosted alongside the API.
func New(votes VoteService, users UserService, db Pinger, staticDir string) *Server {
	return &Server{votes: votes, users: users, db: db, staticDir: staticDir}
}

// Routes exposes the HTTP handlers for voting and registration.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/songs/vote-info", s.handleVoteInfo)
	mux.HandleFunc("POST /api/songs/{songID}/vote", s.handleSubmitVote)
	mux.HandleFunc("GET /api/songs/{songID}/vote/{userID}", s.handleUserVote)

	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("GET /api/users", s.handleListUsers)

	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	return mux
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// respondError maps the service error taxonomy onto HTTP statuses:
// validation to 400, unknown song to 404, duplicate email to 400, anything
// else to 500 with the detail kept out of the response.
func respondError(w http.ResponseWriter, err error) {
	var invalid *app.ValidationError
	switch {
	case errors.As(err, &invalid):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: invalid.Reason})
	case errors.Is(err, store.ErrSongNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: "Song not found"})
	case errors.Is(err, store.ErrEmailTaken):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Email already exists or database error"})
	default:
		log.Error().Err(err).Msg("request failed")
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "Database error"})
	}
}
