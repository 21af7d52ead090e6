package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"radiocalico/internal/app/users"
	"radiocalico/internal/app/votes"
	"radiocalico/internal/store/postgres"
	"radiocalico/internal/store/sqlite"
)

// dataStore is the full method set both storage bindings implement.
type dataStore interface {
	EnsureSchema(ctx context.Context) error
	votes.SongStore
	votes.VoteLedger
	votes.VoteReader
	users.Store
}

// openDatabase selects the storage binding from the DSN scheme and waits
// until the instance responds.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, dataStore, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database url: %w", err)
	}

	var (
		db      *sql.DB
		binding dataStore
	)
	switch u.Scheme {
	case "postgres", "postgresql":
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		binding = postgres.New(db)

	case "sqlite", "sqlite3":
		path := u.Opaque
		if path == "" {
			path = u.Host + u.Path
		}
		// Foreign keys are off by default in SQLite; the vote ledger relies
		// on them to reject votes for unknown songs.
		db, err = sql.Open("sqlite3", path+"?_foreign_keys=on")
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		binding = sqlite.New(db)

	default:
		return nil, nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}

	if err := pingUntilReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, binding, nil
}

func pingUntilReady(ctx context.Context, db *sql.DB) error {
	const (
		pingTimeout    = 5 * time.Second
		maxWait        = 30 * time.Second
		initialBackoff = 500 * time.Millisecond
		maxBackoff     = 5 * time.Second
	)

	deadline := time.Now().Add(maxWait)
	backoff := initialBackoff
	var lastErr error

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			break
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	return fmt.Errorf("ping database: %w", lastErr)
}

// redactDSN strips credentials for logging.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	return u.Redacted()
}
