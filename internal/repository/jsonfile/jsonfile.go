// Package jsonfile persists the user collection as a pretty-printed JSON
// array in a single flat file. Every operation reads the whole file, mutates
// the in-memory list, and rewrites the file in full. A mutex serializes all
// operations so concurrent read-modify-write cycles cannot lose updates.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/msomdec/userfile/internal/domain"
)

// Store implements domain.UserRepository backed by a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a Store that persists to the file at path. The file does not
// need to exist yet; it is created on the first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Migrate ensures the backing file exists, writing an empty collection if it
// is missing. Part of the domain.Database lifecycle.
func (s *Store) Migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	return s.writeAll(nil)
}

// Close is a no-op; the file is not held open between operations.
func (s *Store) Close() error { return nil }

func (s *Store) List(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readAll()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	return s.writeAll(append(users, *user))
}

func (s *Store) Update(ctx context.Context, id string, patch domain.UserUpdate, updatedAt time.Time) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		applyPatch(&users[i], patch)
		users[i].UpdatedAt = updatedAt
		if err := s.writeAll(users); err != nil {
			return nil, err
		}
		return &users[i], nil
	}
	return nil, domain.ErrNotFound
}

func (s *Store) Delete(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		removed := users[i]
		if err := s.writeAll(append(users[:i], users[i+1:]...)); err != nil {
			return nil, err
		}
		return &removed, nil
	}
	return nil, domain.ErrNotFound
}

func applyPatch(u *domain.User, patch domain.UserUpdate) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Age != nil {
		u.Age = patch.Age
	}
	if patch.Country != nil {
		u.Country = *patch.Country
	}
}

// record is the on-disk representation of a user. Timestamps are stored as
// RFC3339 strings so the file stays readable and language-neutral.
type record struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       *int   `json:"age,omitempty"`
	Country   string `json:"country"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// readAll loads the full collection. A missing file means the collection has
// not been created yet and yields an empty list; any other read or parse
// failure is a real error and is surfaced to the caller.
func (s *Store) readAll() ([]domain.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	users := make([]domain.User, len(records))
	for i, rec := range records {
		u, err := rec.toUser()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
		users[i] = u
	}
	return users, nil
}

// writeAll serializes the full collection and overwrites the backing file.
func (s *Store) writeAll(users []domain.User) error {
	records := make([]record, len(users))
	for i, u := range users {
		records[i] = toRecord(u)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func toRecord(u domain.User) record {
	return record{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		Country:   u.Country,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func (r record) toUser() (domain.User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("createdAt for %s: %w", r.ID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("updatedAt for %s: %w", r.ID, err)
	}
	return domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Age:       r.Age,
		Country:   r.Country,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
