package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/userfile/internal/domain"
)

// UserService handles user collection operations.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUserInput carries the client-supplied fields for a new user.
type CreateUserInput struct {
	Name    string
	Email   string
	Age     *int
	Country string
}

// List returns all users in insertion order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Create validates the input and appends a new user. The ID is always issued
// server-side and the country defaults when omitted. Returns ErrInvalidInput
// when name or email is missing and ErrDuplicateEmail when the email is
// already taken.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}

	country := input.Country
	if country == "" {
		country = domain.DefaultCountry
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Age:       input.Age,
		Country:   country,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update merges the patch over the existing record and refreshes its
// UpdatedAt. Only name, email, age and country are mutable; the ID and
// CreatedAt always stay as issued. Email uniqueness is not re-checked here,
// it is a creation-time rule only.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserUpdate) (*domain.User, error) {
	return s.users.Update(ctx, id, patch, time.Now().UTC())
}

// Delete removes the user and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Delete(ctx, id)
}
