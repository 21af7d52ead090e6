package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"radiocalico/internal/store"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

const (
	insertSongQuery = `
		INSERT INTO songs (artist, title, album)
		VALUES ($1, $2, $3)
		ON CONFLICT (artist, title) DO NOTHING
		RETURNING id, album
	`
	lookupSongQuery = `
		SELECT id, album
		FROM songs
		WHERE artist = $1 AND title = $2
	`
)

func TestResolveOrCreateSongInserts(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertSongQuery)).
		WithArgs("Artist A", "Song X", "Album Z").
		WillReturnRows(sqlmock.NewRows([]string{"id", "album"}).AddRow(int64(7), "Album Z"))

	album := "Album Z"
	song, err := s.ResolveOrCreateSong(context.Background(), "Artist A", "Song X", &album)
	if err != nil {
		t.Fatalf("ResolveOrCreateSong: %v", err)
	}
	if song.ID != 7 {
		t.Fatalf("expected id 7, got %d", song.ID)
	}
	if song.Album == nil || *song.Album != "Album Z" {
		t.Fatalf("expected stored album, got %v", song.Album)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolveOrCreateSongConflictRereads(t *testing.T) {
	s, mock := newMock(t)

	// DO NOTHING yields no row when the pair already exists.
	mock.ExpectQuery(regexp.QuoteMeta(insertSongQuery)).
		WithArgs("Artist A", "Song X", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "album"}))

	mock.ExpectQuery(regexp.QuoteMeta(lookupSongQuery)).
		WithArgs("Artist A", "Song X").
		WillReturnRows(sqlmock.NewRows([]string{"id", "album"}).AddRow(int64(7), "First Album"))

	song, err := s.ResolveOrCreateSong(context.Background(), "Artist A", "Song X", nil)
	if err != nil {
		t.Fatalf("ResolveOrCreateSong: %v", err)
	}
	if song.ID != 7 {
		t.Fatalf("expected existing id 7, got %d", song.ID)
	}
	if song.Album == nil || *song.Album != "First Album" {
		t.Fatalf("expected first-write album, got %v", song.Album)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertVote(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO votes (song_id, user_id, vote_type, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (song_id, user_id)
		DO UPDATE SET vote_type = EXCLUDED.vote_type, updated_at = NOW()
	`)).
		WithArgs(int64(7), "u1", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.UpsertVote(context.Background(), 7, "u1", 1); err != nil {
		t.Fatalf("UpsertVote: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertVoteUnknownSong(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO votes`)).
		WithArgs(int64(42), "u1", -1).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := s.UpsertVote(context.Background(), 42, "u1", -1)
	if !errors.Is(err, store.ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVoteCounts(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*) FILTER (WHERE vote_type = 1),
		       COUNT(*) FILTER (WHERE vote_type = -1)
		FROM votes
		WHERE song_id = $1
	`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"likes", "dislikes"}).AddRow(int64(3), int64(1)))

	counts, err := s.VoteCounts(context.Background(), 7)
	if err != nil {
		t.Fatalf("VoteCounts: %v", err)
	}
	if counts.Likes != 3 || counts.Dislikes != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserVoteAbsent(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT vote_type
		FROM votes
		WHERE song_id = $1 AND user_id = $2
	`)).
		WithArgs(int64(7), "u3").
		WillReturnRows(sqlmock.NewRows([]string{"vote_type"}))

	vote, err := s.UserVote(context.Background(), 7, "u3")
	if err != nil {
		t.Fatalf("UserVote: %v", err)
	}
	if vote != nil {
		t.Fatalf("expected nil vote, got %d", *vote)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id
	`)).
		WithArgs("Ada", "ada@example.com").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := s.CreateUser(context.Background(), "Ada", "ada@example.com")
	if !errors.Is(err, store.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecentUsersNewestFirst(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, email
		FROM users
		ORDER BY id DESC
		LIMIT $1
	`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(int64(3), "C", "c@example.com").
			AddRow(int64(2), "B", "b@example.com"))

	users, err := s.RecentUsers(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentUsers: %v", err)
	}
	if len(users) != 2 || users[0].ID != 3 || users[1].ID != 2 {
		t.Fatalf("unexpected users: %+v", users)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
