//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/penshort/userlinks/internal/model"
	"github.com/penshort/userlinks/internal/testutil"
)

func TestRepository_CreateAndGetUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	user := testutil.NewTestUser(t, "alice")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected generated ID")
	}

	loaded, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if loaded.Name != user.Name || loaded.Email != user.Email {
		t.Errorf("loaded = %+v, want name %q email %q", loaded, user.Name, user.Email)
	}
	if loaded.PasswordHash != "" {
		t.Error("GetUserByID must not load the password hash")
	}
}

func TestRepository_GetUserNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	if _, err := repo.GetUserByID(ctx, 999999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRepository_ListUsersOrdered(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", users)
	}

	for _, name := range []string{"carol", "alice", "bob"} {
		if err := repo.CreateUser(ctx, testutil.NewTestUser(t, name)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	users, err = repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len = %d, want 3", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i-1].ID >= users[i].ID {
			t.Errorf("users not ordered by id: %d then %d", users[i-1].ID, users[i].ID)
		}
	}
	if users[0].Name != "carol" {
		t.Errorf("first user = %q, want carol", users[0].Name)
	}
}

func TestRepository_EmailExists(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	user := testutil.NewTestUser(t, "alice")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	tests := []struct {
		name      string
		email     string
		excludeID int64
		want      bool
	}{
		{"any user", user.Email, 0, true},
		{"excluding owner", user.Email, user.ID, false},
		{"excluding someone else", user.Email, user.ID + 1, true},
		{"unknown email", "nobody@example.com", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.EmailExists(ctx, tt.email, tt.excludeID)
			if err != nil {
				t.Fatalf("email exists: %v", err)
			}
			if got != tt.want {
				t.Errorf("EmailExists(%q, %d) = %v, want %v", tt.email, tt.excludeID, got, tt.want)
			}
		})
	}
}

func TestRepository_UpdateAndDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	user := testutil.NewTestUser(t, "alice")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	ok, err := repo.UpdateUser(ctx, user.ID, "Alicia", "alicia@example.com")
	if err != nil || !ok {
		t.Fatalf("update user: ok=%v err=%v", ok, err)
	}

	loaded, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if loaded.Name != "Alicia" || loaded.Email != "alicia@example.com" {
		t.Errorf("update not applied: %+v", loaded)
	}

	ok, err = repo.UpdateUser(ctx, user.ID+1000, "Ghost", "ghost@example.com")
	if err != nil || ok {
		t.Fatalf("update missing user: ok=%v err=%v", ok, err)
	}

	ok, err = repo.DeleteUser(ctx, user.ID)
	if err != nil || !ok {
		t.Fatalf("delete user: ok=%v err=%v", ok, err)
	}

	ok, err = repo.DeleteUser(ctx, user.ID)
	if err != nil || ok {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}
}

func TestRepository_SearchUsersByName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	for _, name := range []string{"John Smith", "Johnny", "Alice"} {
		if err := repo.CreateUser(ctx, testutil.NewTestUser(t, name)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	tests := []struct {
		fragment string
		want     int
	}{
		{"John", 2},
		{"ohn", 2},
		{"Alice", 1},
		{"john", 0},
		{"Zed", 0},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			users, err := repo.SearchUsersByName(ctx, tt.fragment)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(users) != tt.want {
				t.Errorf("search %q returned %d users, want %d", tt.fragment, len(users), tt.want)
			}
		})
	}
}

func TestRepository_ListCredentialsByEmail(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	first := &model.User{Name: "First", Email: "dup@example.com", PasswordHash: "hash-1"}
	second := &model.User{Name: "Second", Email: "dup@example.com", PasswordHash: "hash-2"}
	for _, u := range []*model.User{first, second} {
		if err := repo.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	creds, err := repo.ListCredentialsByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("list credentials: %v", err)
	}
	if len(creds) != 2 {
		t.Fatalf("len = %d, want 2", len(creds))
	}
	if creds[0].ID != first.ID || creds[0].PasswordHash != "hash-1" {
		t.Errorf("first credential = %+v", creds[0])
	}

	none, err := repo.ListCredentialsByEmail(ctx, "none@example.com")
	if err != nil {
		t.Fatalf("list credentials: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no credentials, got %d", len(none))
	}
}

func newTestRepository(t *testing.T, ctx context.Context) *Repository {
	t.Helper()

	dbURL := testutil.PostgresURL(t)
	repo, err := New(ctx, dbURL, WithMaxConns(4), WithMinConns(1))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return repo
}
