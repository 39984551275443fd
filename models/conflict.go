package models

// ConflictState describes a single-item naming conflict: the user tried to
// add an item whose name matches an existing active item (case-insensitive).
// It is transient state, destroyed on resolve or cancel.
type ConflictState struct {
	IsOpen bool

	// ConflictingItem is the existing active item that matched.
	ConflictingItem *Item

	// PendingName is the name the user tried to add.
	PendingName string

	// PendingQuantity is the quantity the user tried to add, nil when none.
	PendingQuantity *string

	// SuggestedQuantity is the pre-computed merge of the existing and the
	// pending quantity, offered as the dialog's default.
	SuggestedQuantity string
}

// BulkConflict is one colliding candidate of a bulk import.
type BulkConflict struct {
	ExistingItem Item `json:"existing_item"`

	// NewItemCandidate is the create the collision prevented.
	NewItemCandidate CreateItemDTO `json:"new_item_candidate"`

	// SuggestedQuantity is the pre-computed merge of the two quantities.
	SuggestedQuantity string `json:"suggested_quantity"`
}

// BulkConflictResult partitions bulk-import candidates into collisions and
// straight creates. Both slices follow the input candidate order.
type BulkConflictResult struct {
	Conflicts      []BulkConflict  `json:"conflicts"`
	NonConflicting []CreateItemDTO `json:"non_conflicting"`
}
