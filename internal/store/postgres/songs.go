package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"radiocalico/internal/store"
)

// ResolveOrCreateSong maps (artist, title) to its stable song row, inserting
// on first sight. The insert tolerates a concurrent creation of the same
// pair: ON CONFLICT DO NOTHING yields no row, and the follow-up read returns
// whichever insert won. The stored album is authoritative; a differing album
// on a later call is ignored.
func (s *Store) ResolveOrCreateSong(ctx context.Context, artist, title string, album *string) (store.Song, error) {
	song := store.Song{Artist: artist, Title: title}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (artist, title, album)
		VALUES ($1, $2, $3)
		ON CONFLICT (artist, title) DO NOTHING
		RETURNING id, album
	`, artist, title, album).Scan(&song.ID, &song.Album)
	if err == nil {
		return song, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.Song{}, fmt.Errorf("insert song: %w", err)
	}

	// The pair already existed; read the row that won.
	err = s.db.QueryRowContext(ctx, `
		SELECT id, album
		FROM songs
		WHERE artist = $1 AND title = $2
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
		SELECT EXISTS (SELECT 1 FROM songs WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check song: %w", err)
	}
	return exists, nil
}
