package models

import "time"

// MutationType enumerates the logical operations the engine can queue
// against the remote store.
type MutationType string

const (
	MutationCreate     MutationType = "create"
	MutationUpdate     MutationType = "update"
	MutationDelete     MutationType = "delete"
	MutationReorder    MutationType = "reorder"
	MutationBulkCreate MutationType = "bulk_create"
)

// Mutation is one queued logical operation. It carries enough information to
// be re-executed after a process restart without reference to in-memory
// state. Exactly one of the payload fields matching Type is populated.
type Mutation struct {
	// ID identifies the mutation itself (not the item it touches).
	ID string `json:"id"`

	// CollectionID is the serialization key: mutations sharing it execute
	// strictly in submission order.
	CollectionID string `json:"collection_id"`

	Type MutationType `json:"type"`

	Create     *CreateItemDTO  `json:"create,omitempty"`
	Update     *UpdateItem     `json:"update,omitempty"`
	Delete     *ItemID         `json:"delete,omitempty"`
	Reorder    []ReorderEntry  `json:"reorder,omitempty"`
	BulkCreate []CreateItemDTO `json:"bulk_create,omitempty"`

	// OptimisticID is the client-generated id of the record a create touched
	// in the cache, used to reconcile it with the server-assigned id.
	OptimisticID string `json:"optimistic_id,omitempty"`

	// OptimisticIDs are the client-generated ids of a bulk create, in
	// candidate order.
	OptimisticIDs []string `json:"optimistic_ids,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`

	// Attempts counts executed tries while the client was online.
	Attempts int `json:"attempts,omitempty"`
}

// UpdateItem is the payload of an update mutation.
type UpdateItem struct {
	ID    ItemID    `json:"id"`
	Patch ItemPatch `json:"patch"`
}

// PendingIDs returns the item ids this mutation holds pending in the cache.
func (m Mutation) PendingIDs() []ItemID {
	switch m.Type {
	case MutationCreate:
		return []ItemID{ClientID(m.OptimisticID)}
	case MutationUpdate:
		if m.Update != nil {
			return []ItemID{m.Update.ID}
		}
	case MutationDelete:
		if m.Delete != nil {
			return []ItemID{*m.Delete}
		}
	case MutationReorder:
		ids := make([]ItemID, 0, len(m.Reorder))
		for _, e := range m.Reorder {
			ids = append(ids, e.ID)
		}
		return ids
	case MutationBulkCreate:
		ids := make([]ItemID, 0, len(m.OptimisticIDs))
		for _, id := range m.OptimisticIDs {
			ids = append(ids, ClientID(id))
		}
		return ids
	}
	return nil
}
