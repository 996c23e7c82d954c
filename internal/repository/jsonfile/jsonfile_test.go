package jsonfile_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/userfile/internal/domain"
	"github.com/msomdec/userfile/internal/repository/jsonfile"
)

// Verify that *jsonfile.Store implements the repository and lifecycle
// interfaces at compile time.
var (
	_ domain.UserRepository = (*jsonfile.Store)(nil)
	_ domain.Database       = (*jsonfile.Store)(nil)
)

func newTestStore(t *testing.T) (*jsonfile.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return jsonfile.New(path), path
}

func testUser(id, name, email string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Country:   domain.DefaultCountry,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStore_List_MissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	users, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty collection, got %d users", len(users))
	}
}

func TestStore_List_CorruptFile(t *testing.T) {
	store, path := newTestStore(t)

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := store.List(context.Background()); err == nil {
		t.Fatal("expected error for corrupt file, got nil")
	}
}

func TestStore_Migrate_CreatesEmptyFile(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backing file: %v", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("backing file is not a JSON array: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty array, got %d records", len(records))
	}
}

func TestStore_Create_And_List(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testUser("u1", "Alice", "alice@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(ctx, testUser("u2", "Bob", "bob@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != "u1" || users[1].ID != "u2" {
		t.Fatalf("expected insertion order u1,u2, got %s,%s", users[0].ID, users[1].ID)
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testUser("u1", "Alice", "dup@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := store.Create(ctx, testUser("u2", "Bob", "dup@example.com"))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected collection unchanged at 1 user, got %d", len(users))
	}
}

func TestStore_GetByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testUser("u1", "Alice", "alice@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	user, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Name != "Alice" {
		t.Fatalf("expected name Alice, got %q", user.Name)
	}

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Update_MergesWhitelistedFields(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created := testUser("u1", "Alice", "alice@example.com")
	if err := store.Create(ctx, created); err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "X"
	later := created.UpdatedAt.Add(time.Second)
	updated, err := store.Update(ctx, "u1", domain.UserUpdate{Name: &name}, later)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != "X" {
		t.Fatalf("expected name X, got %q", updated.Name)
	}
	if updated.Email != "alice@example.com" {
		t.Fatalf("email changed unexpectedly: %q", updated.Email)
	}
	if updated.Country != domain.DefaultCountry {
		t.Fatalf("country changed unexpectedly: %q", updated.Country)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("createdAt must not change on update")
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatal("updatedAt must not move backwards")
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testUser("u1", "Alice", "alice@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "X"
	_, err := store.Update(ctx, "missing", domain.UserUpdate{Name: &name}, time.Now())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	users, _ := store.List(ctx)
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Fatal("collection changed by failed update")
	}
}

func TestStore_Delete_PreservesOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, u := range []struct{ id, name, email string }{
		{"u1", "Alice", "alice@example.com"},
		{"u2", "Bob", "bob@example.com"},
		{"u3", "Cara", "cara@example.com"},
	} {
		if err := store.Create(ctx, testUser(u.id, u.name, u.email)); err != nil {
			t.Fatalf("Create %s: %v", u.id, err)
		}
	}

	removed, err := store.Delete(ctx, "u2")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed.ID != "u2" {
		t.Fatalf("expected removed record u2, got %s", removed.ID)
	}

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users after delete, got %d", len(users))
	}
	if users[0].ID != "u1" || users[1].ID != "u3" {
		t.Fatalf("expected order u1,u3 after delete, got %s,%s", users[0].ID, users[1].ID)
	}
}

func TestStore_Delete_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testUser("u1", "Alice", "alice@example.com")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := store.Delete(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	users, _ := store.List(ctx)
	if len(users) != 1 {
		t.Fatalf("expected collection unchanged at 1 user, got %d", len(users))
	}
}

func TestStore_FileIsPrettyPrinted(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	age := 30
	user := testUser("u1", "Alice", "alice@example.com")
	user.Age = &age
	if err := store.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backing file: %v", err)
	}

	want, err := json.MarshalIndent(json.RawMessage(data), "", "  ")
	if err != nil {
		t.Fatalf("re-indent: %v", err)
	}
	if string(data) != string(want) {
		t.Fatal("backing file is not pretty-printed with two-space indent")
	}

	// Round-trip through a fresh store reading the same file.
	reloaded, err := jsonfile.New(path).List(ctx)
	if err != nil {
		t.Fatalf("List from fresh store: %v", err)
	}
	if len(reloaded) != 1 {
		t.Fatalf("expected 1 user after reload, got %d", len(reloaded))
	}
	if reloaded[0].Age == nil || *reloaded[0].Age != 30 {
		t.Fatal("age did not survive the file round trip")
	}
}
