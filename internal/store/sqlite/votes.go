package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"radiocalico/internal/store"
)

// UpsertVote records a user's vote for a song, replacing any earlier vote by
// the same user in a single statement. INSERT OR REPLACE rewrites the row
// keyed by (song_id, user_id), refreshing its timestamp.
func (s *Store) UpsertVote(ctx context.Context, songID int64, userID string, voteType int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO votes (song_id, user_id, vote_type)
		VALUES (?, ?, ?)
	`, songID, userID, voteType)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrSongNotFound
		}
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}

// VoteCounts tallies likes and dislikes for a song. A song nobody voted on
// yields zero counts.
func (s *Store) VoteCounts(ctx context.Context, songID int64) (store.VoteCounts, error) {
	var counts store.VoteCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(CASE WHEN vote_type = 1 THEN 1 END),
		       COUNT(CASE WHEN vote_type = -1 THEN 1 END)
		FROM votes
		WHERE song_id = ?
	`, songID).Scan(&counts.Likes, &counts.Dislikes)
	if err != nil {
		return store.VoteCounts{}, fmt.Errorf("count votes: %w", err)
	}
	return counts, nil
}

// UserVote returns the user's current vote for a song, or nil if the user
// never voted on it.
func (s *Store) UserVote(ctx context.Context, songID int64, userID string) (*int, error) {
	var voteType int
	err := s.db.QueryRowContext(ctx, `
		SELECT vote_type
		FROM votes
		WHERE song_id = ? AND user_id = ?
	`, songID, userID).Scan(&voteType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup vote: %w", err)
	}
	return &voteType, nil
}
