// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/usersvc/usersvc/internal/model"
)

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest represents the request body for updating a user.
// Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse represents an API error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserListResponse converts a slice of User models to response DTOs.
func ToUserListResponse(users []model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}
