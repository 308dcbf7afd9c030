// Package store provides the in-memory data access layer.
// It owns the authoritative set of User records and id assignment for
// the process lifetime. There is no persistence across restarts.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/usersvc/usersvc/internal/model"
)

// Common errors for user store operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UpdateUserParams defines the fields that may be changed by UpdateUser.
// Nil fields are left untouched.
type UpdateUserParams struct {
	Name  *string
	Email *string
}

// Store holds all user records behind a single lock.
// Mutations run their uniqueness check and write inside the same
// critical section, so two concurrent creates can never both pass the
// duplicate-email check.
type Store struct {
	mu     sync.RWMutex
	users  map[int]model.User
	nextID int
	clock  clockwork.Clock
}

// New creates an empty Store. The clock is used to stamp created_at;
// pass clockwork.NewFakeClock in tests for deterministic timestamps.
func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		users:  make(map[int]model.User),
		nextID: 1,
		clock:  clock,
	}
}

// CreateUser inserts a new user and assigns the next unused id.
// The id counter never resets, so deleted ids are never reassigned.
func (s *Store) CreateUser(ctx context.Context, name, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, ErrDuplicateEmail
		}
	}

	user := model.User{
		ID:        s.nextID,
		Name:      name,
		Email:     email,
		CreatedAt: s.clock.Now().UTC(),
	}
	s.users[user.ID] = user
	s.nextID++

	return user, nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, id int) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return user, nil
}

// ListUsers returns all users ordered by ascending id.
// Ids are monotonically increasing, so this is insertion order.
func (s *Store) ListUsers(ctx context.Context) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
	return users
}

// UpdateUser applies the supplied fields to an existing user.
// A supplied email that matches any other record fails with
// ErrDuplicateEmail. The id and created_at fields are never changed.
func (s *Store) UpdateUser(ctx context.Context, id int, params UpdateUserParams) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}

	if params.Email != nil {
		for uid, u := range s.users {
			if uid != id && u.Email == *params.Email {
				return model.User{}, ErrDuplicateEmail
			}
		}
		user.Email = *params.Email
	}
	if params.Name != nil {
		user.Name = *params.Name
	}

	s.users[id] = user
	return user, nil
}

// DeleteUser removes a user irreversibly. The id is retired for good
// because the counter never moves backwards.
func (s *Store) DeleteUser(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// Count returns the number of stored users.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
