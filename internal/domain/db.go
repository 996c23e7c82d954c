package domain

import "context"

// Database defines lifecycle operations for a storage backend. Each
// implementation (JSON file, SQLite, etc.) owns its own initialization
// strategy, ensuring the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
