// Package testutil provides shared helpers for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/usersvc/usersvc/internal/model"
	"github.com/usersvc/usersvc/internal/store"
)

// SeedTime is the instant fake clocks start at.
var SeedTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// NewTestStore returns an empty store backed by a fake clock pinned to SeedTime.
func NewTestStore(t testing.TB) (*store.Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(SeedTime)
	return store.New(clock), clock
}

// SeedDemoUsers inserts the two demo users and returns them.
// They take ids 1 and 2, matching the seed data the server starts with.
func SeedDemoUsers(t testing.TB, s *store.Store) []model.User {
	t.Helper()
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, "Alice Johnson", "alice@example.com")
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	bob, err := s.CreateUser(ctx, "Bob Smith", "bob@example.com")
	if err != nil {
		t.Fatalf("seed bob: %v", err)
	}

	return []model.User{alice, bob}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
