// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/usersvc/usersvc/internal/metrics"
	"github.com/usersvc/usersvc/internal/model"
	"github.com/usersvc/usersvc/internal/store"
)

// Service errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrEmptyName    = errors.New("name must not be empty")
	ErrInvalidEmail = errors.New("invalid email address")
)

// emailRegex matches a plausible email address. Comparison against
// existing records stays case-sensitive with no normalization.
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// UserService handles user business logic.
type UserService struct {
	store   *store.Store
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(st *store.Store, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   st,
		metrics: recorder,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// CreateUser validates input and inserts a new user.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (model.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return model.User{}, ErrEmptyName
	}
	if err := validateEmail(input.Email); err != nil {
		return model.User{}, err
	}

	user, err := s.store.CreateUser(ctx, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, err
	}

	s.metrics.IncUserCreated()

	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id int) (model.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

// ListUsers returns all users in id order.
func (s *UserService) ListUsers(ctx context.Context) []model.User {
	return s.store.ListUsers(ctx)
}

// UpdateUserInput defines input for updating a user.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	ID    int
	Name  *string
	Email *string
}

// UpdateUser validates the supplied fields and applies them.
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (model.User, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return model.User{}, ErrEmptyName
	}
	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return model.User{}, err
		}
	}

	user, err := s.store.UpdateUser(ctx, input.ID, store.UpdateUserParams{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return model.User{}, ErrUserNotFound
		case errors.Is(err, store.ErrDuplicateEmail):
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, err
	}

	s.metrics.IncUserUpdated()

	return user, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.metrics.IncUserDeleted()

	return nil
}

// validateEmail checks email syntax.
func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
