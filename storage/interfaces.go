package storage

import (
	"context"
)

// SnapshotRepository persists a built vocabulary and graph for fast reload.
// Implementations must be thread-safe and support concurrent access.
type SnapshotRepository interface {
	// SaveSnapshot replaces the stored snapshot.
	// Readers observe either the previous snapshot or the new one, never a mix.
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error

	// LoadSnapshot retrieves the stored snapshot.
	// Returns ErrNotFound if no snapshot has been saved.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// LoadMeta retrieves only the snapshot metadata.
	// Returns ErrNotFound if no snapshot has been saved.
	LoadMeta(ctx context.Context) (*Meta, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
