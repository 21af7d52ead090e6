// Package votes implements the vote orchestrator: song identity resolution,
// the one-vote-per-user ledger, and the aggregate tallies the player shows.
package votes

import (
	"context"
	"strings"

	"radiocalico/internal/app"
	"radiocalico/internal/store"
)

// SongStore resolves (artist, title) pairs to stable song rows.
type SongStore interface {
	ResolveOrCreateSong(ctx context.Context, artist, title string, album *string) (store.Song, error)
	SongExists(ctx context.Context, id int64) (bool, error)
}

// VoteLedger holds at most one vote row per (song, user) and replaces the
// value on re-vote.
type VoteLedger interface {
	UpsertVote(ctx context.Context, songID int64, userID string, voteType int) error
}

// VoteReader derives tallies and per-user lookups from the ledger.
type VoteReader interface {
	VoteCounts(ctx context.Context, songID int64) (store.VoteCounts, error)
	UserVote(ctx context.Context, songID int64, userID string) (*int, error)
}

// Info is the response to a vote-info request: the resolved song plus its
// current tallies.
type Info struct {
	store.Song
	store.VoteCounts
}

// Result is the response to a submitted vote. UserVote echoes the
// just-applied value, which is exactly what a subsequent UserVote lookup
// would return.
type Result struct {
	store.VoteCounts
	UserVote int `json:"userVote"`
}

// Service exposes the three operations the radio player needs.
type Service interface {
	// VoteInfo resolves or creates the song for the playing track and returns
	// its tallies. This is the mandatory first step before any vote.
	VoteInfo(ctx context.Context, artist, title string, album *string) (Info, error)
	// Submit records a vote for an already-resolved song. A songID that was
	// never resolved fails with store.ErrSongNotFound; nothing is created.
	Submit(ctx context.Context, songID int64, userID string, voteType int) (Result, error)
	// UserVote returns the caller's current vote, or nil if they never voted.
	UserVote(ctx context.Context, songID int64, userID string) (*int, error)
}

type service struct {
	songs   SongStore
	ledger  VoteLedger
	tallies VoteReader
}

// New wires a Service from the song identity store, the vote ledger, and the
// aggregation reader.
func New(songs SongStore, ledger VoteLedger, tallies VoteReader) Service {
	return &service{songs: songs, ledger: ledger, tallies: tallies}
}

func (s *service) VoteInfo(ctx context.Context, artist, title string, album *string) (Info, error) {
	if strings.TrimSpace(artist) == "" || strings.TrimSpace(title) == "" {
		return Info{}, &app.ValidationError{Reason: "Artist and title are required"}
	}

	song, err := s.songs.ResolveOrCreateSong(ctx, artist, title, album)
	if err != nil {
		return Info{}, err
	}

	counts, err := s.tallies.VoteCounts(ctx, song.ID)
	if err != nil {
		return Info{}, err
	}
	return Info{Song: song, VoteCounts: counts}, nil
}

func (s *service) Submit(ctx context.Context, songID int64, userID string, voteType int) (Result, error) {
	if strings.TrimSpace(userID) == "" || (voteType != store.VoteLike && voteType != store.VoteDislike) {
		return Result{}, &app.ValidationError{Reason: "Valid userId and voteType (1 for like, -1 for dislike) are required"}
	}

	// Arbitrary ids must fail rather than silently grow the ledger. The
	// foreign key in the vote tables backstops a song deleted between the
	// check and the upsert; songs are never deleted today.
	exists, err := s.songs.SongExists(ctx, songID)
	if err != nil {
		return Result{}, err
	}
	if !exists {
		return Result{}, store.ErrSongNotFound
	}

	if err := s.ledger.UpsertVote(ctx, songID, userID, voteType); err != nil {
		return Result{}, err
	}

	counts, err := s.tallies.VoteCounts(ctx, songID)
	if err != nil {
		return Result{}, err
	}
	return Result{VoteCounts: counts, UserVote: voteType}, nil
}

func (s *service) UserVote(ctx context.Context, songID int64, userID string) (*int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.tallies.UserVote(ctx, songID, userID)
}
