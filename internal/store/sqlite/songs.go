package sqlite

import (
	"context"
	"fmt"

	"radiocalico/internal/store"
)

// ResolveOrCreateSong maps (artist, title) to its stable song row, inserting
// on first sight. INSERT OR IGNORE tolerates a concurrent creation of the
// same pair; the follow-up read returns whichever insert won, including its
// stored album.
func (s *Store) ResolveOrCreateSong(ctx context.Context, artist, title string, album *string) (store.Song, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO songs (artist, title, album)
		VALUES (?, ?, ?)
	`, artist, title, album); err != nil {
		return store.Song{}, fmt.Errorf("insert song: %w", err)
	}

	song := store.Song{Artist: artist, Title: title}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, album
		FROM songs
		WHERE artist = ? AND title = ?
	`, artist, title).Scan(&song.ID, &song.Album)
	if err != nil {
		return store.Song{}, fmt.Errorf("lookup song: %w", err)
	}
	return song, nil
}

// SongExists reports whether a song id was ever assigned.
func (s *Store) SongExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM songs WHERE id = ?)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check song: %w", err)
	}
	return exists, nil
}
