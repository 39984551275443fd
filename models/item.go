package models

import "time"

// IDOrigin tells whether an ItemID was minted locally for an optimistic
// record or assigned by the server. Keeping the origin explicit avoids ever
// confusing a reconciled id with a still-pending one.
type IDOrigin string

const (
	// ServerOrigin marks an id assigned by the remote store.
	ServerOrigin IDOrigin = "server"
	// ClientOrigin marks an id generated locally for an optimistic record
	// that has not been confirmed yet.
	ClientOrigin IDOrigin = "client"
)

// ItemID is a tagged item identifier. The zero value is an empty server id.
type ItemID struct {
	Value  string   `json:"value"`
	Origin IDOrigin `json:"origin,omitempty"`
}

// ServerID wraps a server-assigned identifier.
func ServerID(v string) ItemID { return ItemID{Value: v, Origin: ServerOrigin} }

// ClientID wraps a locally generated optimistic identifier.
func ClientID(v string) ItemID { return ItemID{Value: v, Origin: ClientOrigin} }

// IsClient reports whether the id is a not-yet-reconciled optimistic id.
func (id ItemID) IsClient() bool { return id.Origin == ClientOrigin }

// Equal compares two ids by value only. An optimistic id that has been
// reconciled keeps its value, so value equality is the identity relation
// used throughout the cache.
func (id ItemID) Equal(other ItemID) bool { return id.Value == other.Value }

func (id ItemID) String() string { return id.Value }

// Item is a single entry of a collection: either a shopping-list item or a
// reusable template ("set") item. For template items IsBought is always
// false.
type Item struct {
	ID ItemID `json:"id"`

	// CollectionID is the owning list or set.
	CollectionID string `json:"collection_id"`

	// Name is validated by the caller (non-empty, at most 100 characters).
	Name string `json:"name"`

	// Quantity is free text; nil means no quantity.
	Quantity *string `json:"quantity,omitempty"`

	// Note is free text; nil means no note.
	Note *string `json:"note,omitempty"`

	// IsBought partitions list items into active and bought.
	IsBought bool `json:"is_bought"`

	// SortOrder defines display order within the item's status partition.
	// Active items hold a contiguous zero-based range; bought items follow
	// after the active partition.
	SortOrder int `json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateItemDTO carries the fields of a create operation.
type CreateItemDTO struct {
	CollectionID string  `json:"collection_id"`
	Name         string  `json:"name"`
	Quantity     *string `json:"quantity,omitempty"`
	Note         *string `json:"note,omitempty"`
	IsBought     bool    `json:"is_bought"`
	SortOrder    int     `json:"sort_order"`
}

// ItemPatch is a partial update. Nil fields are left untouched. Quantity and
// Note are nullable on the item itself, so they carry an explicit Set flag:
// SetQuantity with a nil Quantity clears the field. The flags survive the
// JSON round trip through the durable mutation log, which a plain pointer
// encoding would not.
type ItemPatch struct {
	Name        *string `json:"name,omitempty"`
	Quantity    *string `json:"quantity,omitempty"`
	SetQuantity bool    `json:"set_quantity,omitempty"`
	Note        *string `json:"note,omitempty"`
	SetNote     bool    `json:"set_note,omitempty"`
	IsBought    *bool   `json:"is_bought,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

// Apply shallow-merges the patch into item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.SetQuantity {
		item.Quantity = p.Quantity
	}
	if p.SetNote {
		item.Note = p.Note
	}
	if p.IsBought != nil {
		item.IsBought = *p.IsBought
	}
	if p.SortOrder != nil {
		item.SortOrder = *p.SortOrder
	}
}

// ReorderEntry assigns a new sort order to one item.
type ReorderEntry struct {
	ID        ItemID `json:"id"`
	SortOrder int    `json:"sort_order"`
}
