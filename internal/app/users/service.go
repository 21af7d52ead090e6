// Package users implements listener registration. It shares the storage
// substrate with voting but is otherwise independent of it.
package users

import (
	"context"
	"strings"

	"radiocalico/internal/app"
	"radiocalico/internal/store"
)

// recentLimit caps the listener listing, newest first.
const recentLimit = 10

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, name, email string) (store.User, error)
	RecentUsers(ctx context.Context, limit int) ([]store.User, error)
}

// Service exposes listener registration workflows.
type Service interface {
	Register(ctx context.Context, name, email string) (store.User, error)
	Recent(ctx context.Context) ([]store.User, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Register(ctx context.Context, name, email string) (store.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return store.User{}, &app.ValidationError{Reason: "Name and email are required"}
	}
	return s.store.CreateUser(ctx, name, email)
}

func (s *service) Recent(ctx context.Context) ([]store.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.RecentUsers(ctx, recentLimit)
}
