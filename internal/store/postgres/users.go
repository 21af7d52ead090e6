package postgres

import (
	"context"
	"fmt"

	"radiocalico/internal/store"
)

// CreateUser registers a listener. The unique constraint on email surfaces
// duplicates as store.ErrEmailTaken.
func (s *Store) CreateUser(ctx context.Context, name, email string) (store.User, error) {
	user := store.User{Name: name, Email: email}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id
	`, name, email).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.User{}, store.ErrEmailTaken
		}
		return store.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// RecentUsers returns the newest registrations first.
func (s *Store) RecentUsers(ctx context.Context, limit int) ([]store.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email
		FROM users
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]store.User, 0)
	for rows.Next() {
		var u store.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
