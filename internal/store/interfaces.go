// Package store provides the durable client-side persistence of the sync
// engine: the SQLite-backed mutation log that survives process restarts, and
// the JSON snapshot file holding the last-known cache state.
package store

import (
	"context"

	"github.com/nickers/quickshop/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// MutationLog is the durable record of not-yet-confirmed mutations. Entries
// are appended before (or concurrently with) optimistic application and
// removed when their mutation settles. Per collection, iteration order is
// the original submission order.
type MutationLog interface {
	// Append persists the mutation. The entry carries everything needed to
	// re-execute the operation without reference to in-memory state.
	Append(ctx context.Context, m models.Mutation) error

	// Remove deletes the entry for mutation id. Removing an absent id is a
	// no-op.
	Remove(ctx context.Context, id string) error

	// UpdateAttempts persists the online attempt counter of mutation id, so
	// the retry budget survives a restart.
	UpdateAttempts(ctx context.Context, id string, attempts int) error

	// All returns every logged mutation in append order. Entries that can
	// no longer be deserialized are dropped from the log and skipped, never
	// returned and never fatal.
	All(ctx context.Context) ([]models.Mutation, error)
}

// SnapshotStore persists the whole-cache snapshot of a collection between
// runs, so the last-known list can render before the first fetch completes.
type SnapshotStore interface {
	// Load returns the stored items of collectionID. ok is false when no
	// snapshot exists for that collection.
	Load(collectionID string) (items []models.Item, ok bool)

	// Save stores the items of collectionID, replacing any previous
	// snapshot.
	Save(collectionID string, items []models.Item) error
}
