// Package store holds the row types and sentinel errors shared by the
// Postgres and SQLite bindings. Uniqueness constraints on (artist, title)
// and (song_id, user_id) are the only concurrency control the voting core
// relies on; bindings must perform resolve-or-create and vote upserts as
// single atomic statements rather than read-then-write sequences.
package store

import "errors"

var (
	// ErrSongNotFound signals a song id that was never resolved through the
	// identity store.
	ErrSongNotFound = errors.New("song not found")
	// ErrEmailTaken signals a registration with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// Vote values as stored in the ledger.
const (
	VoteLike    = 1
	VoteDislike = -1
)

// Song is a track identified by its (artist, title) pair. Album is metadata
// only and never participates in identity; it is nil when the feed did not
// carry one.
type Song struct {
	ID     int64   `json:"songId"`
	Artist string  `json:"artist"`
	Title  string  `json:"title"`
	Album  *string `json:"album"`
}

// VoteCounts holds the aggregate tallies for one song.
type VoteCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// User is a registered listener.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
