// Package adapter provides transport-layer abstractions for communicating
// with the quickshop backend.
//
// The primary abstractions are [RemoteStore], which decouples the engine from
// the CRUD protocol, and [ChangeFeed], which delivers push notifications
// about remote changes. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]) and a websocket change feed ([NewWSChangeFeed]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
// Failures that never reached the backend are wrapped in [ErrUnreachable];
// [IsTransient] is the single source of truth for the retry/rollback
// decision made at the queue boundary.
package adapter

import (
	"context"

	"github.com/nickers/quickshop/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic access to the remote persistence
// backend. Implementations are responsible for serialisation and for mapping
// transport-level errors to the sentinel values defined in this package.
type RemoteStore interface {
	// ListItems fetches all items of the collection, ordered by sort order.
	// Returns an error wrapped in [ErrUnreachable] when the backend could
	// not be reached.
	ListItems(ctx context.Context, collectionID string) ([]models.Item, error)

	// CreateItem creates a single item and returns the server-side record,
	// including the server-assigned id.
	CreateItem(ctx context.Context, dto models.CreateItemDTO) (models.Item, error)

	// UpdateItem applies a partial update to the item identified by id and
	// returns the updated server-side record.
	UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error)

	// DeleteItem removes the item identified by id.
	DeleteItem(ctx context.Context, id string) error

	// ReorderItems persists new sort orders for a batch of items in one
	// call.
	ReorderItems(ctx context.Context, entries []models.ReorderEntry) error

	// BulkCreateItems creates a batch of items and returns the server-side
	// records in input order.
	BulkCreateItems(ctx context.Context, dtos []models.CreateItemDTO) ([]models.Item, error)

	// Reachable reports whether the backend answers a cheap probe request
	// within the configured probe timeout. An authentication rejection
	// counts as reachable: it proves the network path works.
	Reachable(ctx context.Context) bool
}

// ChangeFeed delivers push notifications about remote changes to a
// collection, produced by other collaborators.
type ChangeFeed interface {
	// Subscribe opens a change subscription for collectionID. onChange is
	// invoked from a background goroutine for every received event until
	// the subscription is closed or the connection drops.
	Subscribe(ctx context.Context, collectionID string, onChange func(models.ChangeEvent)) (Subscription, error)
}

// Subscription is an open change-feed subscription.
type Subscription interface {
	// Unsubscribe closes the subscription. Safe to call more than once.
	Unsubscribe()
}
