package domain

import (
	"context"
	"time"
)

// DefaultCountry is assigned when a user is created without a country.
const DefaultCountry = "Unknown"

// User represents a single record in the managed collection.
type User struct {
	ID        string
	Name      string
	Email     string
	Age       *int
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserUpdate carries the mutable fields of a merge update. Nil fields are
// left untouched. The record's ID and CreatedAt can never be changed this way.
type UserUpdate struct {
	Name    *string
	Email   *string
	Age     *int
	Country *string
}

// UserRepository defines persistence operations for the user collection.
// Implementations must preserve insertion order across List and Delete, and
// must perform each operation atomically with respect to concurrent callers.
type UserRepository interface {
	// List returns every user in insertion order.
	List(ctx context.Context) ([]User, error)
	// GetByID returns the user with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*User, error)
	// Create appends a new user. Returns ErrDuplicateEmail if another
	// record already holds the same email.
	Create(ctx context.Context, user *User) error
	// Update applies the merge patch to the user with the given ID and
	// returns the updated record, or ErrNotFound.
	Update(ctx context.Context, id string, patch UserUpdate, updatedAt time.Time) (*User, error)
	// Delete removes the user with the given ID, preserving the relative
	// order of the remaining records, and returns the removed record,
	// or ErrNotFound.
	Delete(ctx context.Context, id string) (*User, error)
}
