package models

// SyncStatus is the derived synchronization state surfaced to the UI.
// It is computed, never stored.
type SyncStatus string

const (
	// StatusSynced means no pending work and no recorded error.
	StatusSynced SyncStatus = "synced"
	// StatusSyncing means unconfirmed work exists: mutations in flight or
	// queued, or pending items while offline. Offline pending work is
	// expected and reads as syncing, not as an error.
	StatusSyncing SyncStatus = "syncing"
	// StatusError means the remote store rejected a mutation while the
	// client was online. Connectivity failures never produce this state.
	StatusError SyncStatus = "error"
)

// ChangeEventType enumerates remote change notifications.
type ChangeEventType string

const (
	ChangeInsert ChangeEventType = "insert"
	ChangeUpdate ChangeEventType = "update"
	ChangeDelete ChangeEventType = "delete"
)

// ChangeEvent is a push notification that another collaborator modified a
// collection. The engine only ever reacts by refreshing the collection, so
// the payload stays minimal.
type ChangeEvent struct {
	Type         ChangeEventType `json:"type"`
	CollectionID string          `json:"collection_id"`
	ItemID       string          `json:"item_id,omitempty"`
}
