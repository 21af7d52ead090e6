package users

import (
	"context"
	"errors"
	"testing"

	"radiocalico/internal/app"
	"radiocalico/internal/store"
)

type stubStore struct {
	created    []store.User
	recent     []store.User
	createErr  error
	lastLimit  int
	nextUserID int64
}

func (s *stubStore) CreateUser(_ context.Context, name, email string) (store.User, error) {
	if s.createErr != nil {
		return store.User{}, s.createErr
	}
	s.nextUserID++
	u := store.User{ID: s.nextUserID, Name: name, Email: email}
	s.created = append(s.created, u)
	return u, nil
}

func (s *stubStore) RecentUsers(_ context.Context, limit int) ([]store.User, error) {
	s.lastLimit = limit
	return s.recent, nil
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		uname string
		email string
	}{
		{name: "missing name", uname: "", email: "a@example.com"},
		{name: "missing email", uname: "Ada", email: ""},
		{name: "blank name", uname: "  ", email: "a@example.com"},
	}

	svc := New(&stubStore{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.uname, tc.email)
			var invalid *app.ValidationError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := New(&stubStore{createErr: store.ErrEmailTaken})

	_, err := svc.Register(context.Background(), "Ada", "a@example.com")
	if !errors.Is(err, store.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRecentUsesFixedLimit(t *testing.T) {
	st := &stubStore{recent: []store.User{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}}
	svc := New(st)

	got, err := svc.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if st.lastLimit != 10 {
		t.Fatalf("expected limit 10, got %d", st.lastLimit)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected listing: %+v", got)
	}
}
