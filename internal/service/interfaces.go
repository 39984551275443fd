// Package service exposes the engine to UI collaborators: a per-list facade
// covering item actions, sync state, and the single-item conflict dialog, and
// a bulk-import facade for template ("set") imports.
package service

import (
	"context"

	"github.com/nickers/quickshop/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ListService is the per-collection surface the UI talks to.
type ListService interface {
	// Items returns the collection partitioned into active and bought items,
	// each sorted by sort order.
	Items(collectionID string) (active, bought []models.Item)

	// PendingIDs returns the ids awaiting remote confirmation.
	PendingIDs(collectionID string) []string

	// SyncStatus derives the collection's sync status.
	SyncStatus(collectionID string) models.SyncStatus

	// LastError returns the last remote rejection, or nil.
	LastError(collectionID string) error

	// AddItem queues a create for the named item. When the name collides
	// with an existing active item, no mutation is queued; instead the
	// returned conflict state is open and holds the merge suggestion.
	AddItem(ctx context.Context, collectionID, name string, quantity *string) (models.ConflictState, error)

	// Conflict returns the collection's current conflict state.
	Conflict(collectionID string) models.ConflictState

	// ResolveConflict confirms the open conflict: the existing item is
	// updated with the given quantity and the conflict closes. No new item
	// is created.
	ResolveConflict(ctx context.Context, collectionID, quantity string) error

	// CancelConflict discards the open conflict without queueing anything.
	CancelConflict(collectionID string)

	// ToggleItem marks the item bought or active.
	ToggleItem(ctx context.Context, collectionID string, id models.ItemID, bought bool) error

	// DeleteItem removes the item.
	DeleteItem(ctx context.Context, collectionID string, id models.ItemID) error

	// UpdateItemFields applies a partial update to the item.
	UpdateItemFields(ctx context.Context, collectionID string, id models.ItemID, patch models.ItemPatch) error

	// ReorderItems persists a new order for the active partition. Bought
	// items keep their relative order after the active range.
	ReorderItems(ctx context.Context, collectionID string, orderedActive []models.ItemID) error

	// RetrySync clears the recorded error and re-fetches authoritative
	// state.
	RetrySync(collectionID string)
}

// ImportService is the bulk template-to-list import surface.
type ImportService interface {
	// ComputeConflicts partitions the candidates into name collisions and
	// plain creates against the target collection's active items.
	ComputeConflicts(collectionID string, candidates []models.Item) models.BulkConflictResult

	// Import computes conflicts and, when there are none, queues the bulk
	// create immediately. With conflicts present nothing is queued; the
	// caller presents the returned result and confirms via
	// ResolveBulkImport.
	Import(ctx context.Context, collectionID string, candidates []models.Item) (models.BulkConflictResult, error)

	// ResolveBulkImport queues the non-conflicting creates and, for every
	// conflict whose existing-item id is in selected, an update with the
	// suggested merged quantity. Unselected conflicts are left untouched.
	ResolveBulkImport(ctx context.Context, collectionID string, result models.BulkConflictResult, selected []models.ItemID) error
}

// Cache is the slice of the cache controller the services drive.
type Cache interface {
	Items(collectionID string) []models.Item
	PendingIDs(collectionID string) []string
	Status(collectionID string) models.SyncStatus
	LastError(collectionID string) error
	Retry(collectionID string)

	ApplyCreate(m *models.Mutation) models.Item
	ApplyBulkCreate(m *models.Mutation) []models.Item
	ApplyUpdate(m *models.Mutation)
	ApplyDelete(m *models.Mutation)
	ApplyReorder(m *models.Mutation)
}

// MutationQueue accepts mutations for serialized remote execution.
type MutationQueue interface {
	Submit(ctx context.Context, m models.Mutation)
}

// IDGenerator mints mutation ids.
type IDGenerator interface {
	Generate() string
}
