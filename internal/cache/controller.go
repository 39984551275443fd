// Package cache owns the client-side snapshot of each collection: optimistic
// application of edits, pending-id bookkeeping, edit-scoped rollback on a
// remote rejection, and the derived sync status.
package cache

import (
	"sync"
	"time"

	"github.com/nickers/quickshop/internal/adapter"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/internal/store"
	"github.com/nickers/quickshop/models"
)

// Refresher accepts requests to re-fetch the authoritative snapshot of a
// collection. Requests for the same collection may be coalesced.
type Refresher interface {
	Request(collectionID string)
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(collectionID string)

func (f RefresherFunc) Request(collectionID string) { f(collectionID) }

// IDGenerator mints locally unique ids for optimistic records.
type IDGenerator interface {
	Generate() string
}

// collectionState is the unit of ownership: every read-modify-write of a
// collection's snapshot happens under its mutex.
type collectionState struct {
	mu         sync.Mutex
	items      []models.Item
	pendingIDs map[string]struct{}
	lastError  error

	// tokens holds the pre-mutation snapshot per open mutation id, used for
	// edit-scoped rollback on a remote rejection. Replayed mutations have no
	// token.
	tokens map[string][]models.Item

	// openMutations tracks mutations applied (or re-marked during replay)
	// but not yet settled, keyed by mutation id.
	openMutations map[string]struct{}
}

// Controller applies optimistic edits and settles them against executor
// outcomes. Safe for concurrent use; operations on different collections do
// not block each other.
type Controller struct {
	mu          sync.Mutex
	collections map[string]*collectionState

	snapshots store.SnapshotStore
	ids       IDGenerator
	refresher Refresher
	logger    *logger.Logger

	onlineMu sync.RWMutex
	online   bool
}

func NewController(snapshots store.SnapshotStore, ids IDGenerator, log *logger.Logger) *Controller {
	return &Controller{
		collections: make(map[string]*collectionState),
		snapshots:   snapshots,
		ids:         ids,
		logger:      log,
		online:      true,
	}
}

// SetRefresher wires the refresh sink used by Retry and by permanent replay
// failures. Must be called before any mutation settles.
func (c *Controller) SetRefresher(r Refresher) {
	c.refresher = r
}

// SetOnline records the current reachability verdict. It only influences the
// derived status, never the snapshot.
func (c *Controller) SetOnline(online bool) {
	c.onlineMu.Lock()
	c.online = online
	c.onlineMu.Unlock()
}

func (c *Controller) isOnline() bool {
	c.onlineMu.RLock()
	defer c.onlineMu.RUnlock()
	return c.online
}

// state returns the per-collection state, seeding a new one from the snapshot
// store on first access.
func (c *Controller) state(collectionID string) *collectionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.collections[collectionID]
	if !ok {
		s = &collectionState{
			pendingIDs:    make(map[string]struct{}),
			tokens:        make(map[string][]models.Item),
			openMutations: make(map[string]struct{}),
		}
		if c.snapshots != nil {
			if items, found := c.snapshots.Load(collectionID); found {
				s.items = items
			}
		}
		c.collections[collectionID] = s
	}
	return s
}

func cloneItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	copy(out, items)
	return out
}

// Items returns a copy of the current snapshot of the collection.
func (c *Controller) Items(collectionID string) []models.Item {
	s := c.state(collectionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// PendingIDs returns the ids currently awaiting remote confirmation.
func (c *Controller) PendingIDs(collectionID string) []string {
	s := c.state(collectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.pendingIDs))
	for id := range s.pendingIDs {
		ids = append(ids, id)
	}
	return ids
}

// HasPending reports whether any id of the collection awaits confirmation.
func (c *Controller) HasPending(collectionID string) bool {
	s := c.state(collectionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pendingIDs) > 0
}

// InFlight reports whether the collection has applied-but-unsettled
// mutations.
func (c *Controller) InFlight(collectionID string) bool {
	s := c.state(collectionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.openMutations) > 0
}

// LastError returns the last recorded remote rejection, or nil.
func (c *Controller) LastError(collectionID string) error {
	s := c.state(collectionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Status derives the sync status of the collection. An error only reads as
// an error while online: offline pending work is expected and reads as
// syncing.
func (c *Controller) Status(collectionID string) models.SyncStatus {
	online := c.isOnline()

	s := c.state(collectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.lastError != nil && online:
		return models.StatusError
	case !online && len(s.pendingIDs) > 0:
		return models.StatusSyncing
	case online && len(s.openMutations) > 0:
		return models.StatusSyncing
	default:
		return models.StatusSynced
	}
}

// ApplyCreate synthesizes a full optimistic record for the candidate, fills
// in the mutation's optimistic id, appends the record to the snapshot, and
// marks it pending. Server-generated fields get best-effort client defaults.
func (c *Controller) ApplyCreate(m *models.Mutation) models.Item {
	s := c.state(m.CollectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[m.ID] = cloneItems(s.items)
	s.openMutations[m.ID] = struct{}{}

	m.OptimisticID = c.ids.Generate()
	now := time.Now()
	item := models.Item{
		ID:           models.ClientID(m.OptimisticID),
		CollectionID: m.Create.CollectionID,
		Name:         m.Create.Name,
		Quantity:     m.Create.Quantity,
		Note:         m.Create.Note,
		IsBought:     m.Create.IsBought,
		SortOrder:    m.Create.SortOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.items = append(s.items, item)
	s.pendingIDs[m.OptimisticID] = struct{}{}

	return item
}

// ApplyBulkCreate is ApplyCreate for a batch: one optimistic record per
// candidate, in candidate order, all under a single rollback token.
func (c *Controller) ApplyBulkCreate(m *models.Mutation) []models.Item {
	s := c.state(m.CollectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[m.ID] = cloneItems(s.items)
	s.openMutations[m.ID] = struct{}{}

	now := time.Now()
	created := make([]models.Item, 0, len(m.BulkCreate))
	m.OptimisticIDs = make([]string, 0, len(m.BulkCreate))
	for _, dto := range m.BulkCreate {
		id := c.ids.Generate()
		m.OptimisticIDs = append(m.OptimisticIDs, id)
		item := models.Item{
			ID:           models.ClientID(id),
			CollectionID: dto.CollectionID,
			Name:         dto.Name,
			Quantity:     dto.Quantity,
			Note:         dto.Note,
			IsBought:     dto.IsBought,
			SortOrder:    dto.SortOrder,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		s.items = append(s.items, item)
		s.pendingIDs[id] = struct{}{}
		created = append(created, item)
	}

	return created
}

// ApplyUpdate shallow-merges the mutation's patch into the matching record
// and marks its id pending. Unknown ids still mark pending so a later settle
// resolves cleanly.
func (c *Controller) ApplyUpdate(m *models.Mutation) {
	s := c.state(m.CollectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[m.ID] = cloneItems(s.items)
	s.openMutations[m.ID] = struct{}{}

	for i := range s.items {
		if s.items[i].ID.Equal(m.Update.ID) {
			m.Update.Patch.Apply(&s.items[i])
			s.items[i].UpdatedAt = time.Now()
			break
		}
	}
	s.pendingIDs[m.Update.ID.Value] = struct{}{}
}

// ApplyDelete removes the matching record. The id stays pending so a
// confirming or erroring response for the removed record can still settle.
func (c *Controller) ApplyDelete(m *models.Mutation) {
	s := c.state(m.CollectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[m.ID] = cloneItems(s.items)
	s.openMutations[m.ID] = struct{}{}

	for i := range s.items {
		if s.items[i].ID.Equal(*m.Delete) {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	s.pendingIDs[m.Delete.Value] = struct{}{}
}

// ApplyReorder assigns sort orders 0..n-1 to the mutation's entries in entry
// order and re-bases bought items to start right after the active partition,
// preserving their relative order.
func (c *Controller) ApplyReorder(m *models.Mutation) {
	s := c.state(m.CollectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[m.ID] = cloneItems(s.items)
	s.openMutations[m.ID] = struct{}{}

	orderByID := make(map[string]int, len(m.Reorder))
	for _, e := range m.Reorder {
		orderByID[e.ID.Value] = e.SortOrder
		s.pendingIDs[e.ID.Value] = struct{}{}
	}

	activeCount := len(m.Reorder)
	boughtRank := make([]int, 0)
	for i := range s.items {
		if order, ok := orderByID[s.items[i].ID.Value]; ok {
			s.items[i].SortOrder = order
			continue
		}
		if s.items[i].IsBought {
			boughtRank = append(boughtRank, i)
		}
	}
	// Bought items keep their relative order by previous sort_order.
	sortIndicesBySortOrder(s.items, boughtRank)
	for offset, idx := range boughtRank {
		s.items[idx].SortOrder = activeCount + offset
	}
}

// sortIndicesBySortOrder orders the index slice by the items' current
// sort_order (insertion sort; bought partitions are small).
func sortIndicesBySortOrder(items []models.Item, indices []int) {
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && items[indices[j-1]].SortOrder > items[indices[j]].SortOrder; j-- {
			indices[j-1], indices[j] = indices[j], indices[j-1]
		}
	}
}

// MarkPending re-marks the mutation's ids as pending without capturing a
// rollback token. Used when replaying the durable log after a restart, where
// the optimistic edit is already part of the restored snapshot.
func (c *Controller) MarkPending(m models.Mutation) {
	s := c.state(m.CollectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.openMutations[m.ID] = struct{}{}
	for _, id := range m.PendingIDs() {
		s.pendingIDs[id.Value] = struct{}{}
	}
}

// Settle resolves a mutation against its executor outcome.
//
// Success clears the mutation's pending ids and, for creates, swaps the
// optimistic ids for the server-assigned records. A transient failure leaves
// the snapshot and pending ids untouched: connectivity trouble is not
// evidence the edit was wrong. A permanent failure restores the snapshot
// captured when this specific edit was applied and records the error.
// Settling an already-settled mutation is a no-op.
func (c *Controller) Settle(m models.Mutation, created []models.Item, err error) {
	s := c.state(m.CollectionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, open := s.openMutations[m.ID]; !open {
		return
	}

	if err != nil && adapter.IsTransient(err) {
		return
	}

	token := s.tokens[m.ID]
	delete(s.tokens, m.ID)
	delete(s.openMutations, m.ID)

	if err != nil {
		if token != nil {
			s.items = token
		}
		for _, id := range m.PendingIDs() {
			delete(s.pendingIDs, id.Value)
		}
		s.lastError = err
		c.logger.Err(err).Str("func", "Settle").
			Str("collection_id", m.CollectionID).
			Str("mutation_id", m.ID).
			Msg("mutation rejected, snapshot rolled back")
		return
	}

	for _, id := range m.PendingIDs() {
		delete(s.pendingIDs, id.Value)
	}

	switch m.Type {
	case models.MutationCreate:
		if len(created) == 1 {
			s.reconcile(models.ClientID(m.OptimisticID), created[0])
		}
	case models.MutationBulkCreate:
		for i, id := range m.OptimisticIDs {
			if i < len(created) {
				s.reconcile(models.ClientID(id), created[i])
			}
		}
	}
}

// reconcile replaces the optimistic record with the server-assigned one,
// keeping the record's position in the snapshot.
func (s *collectionState) reconcile(optimisticID models.ItemID, server models.Item) {
	for i := range s.items {
		if s.items[i].ID.Equal(optimisticID) {
			s.items[i] = server
			return
		}
	}
}

// ReplaceSnapshot installs an authoritative server snapshot and persists it.
// The pending/in-flight state is re-checked under the collection lock: an
// optimistic edit applied after the refresh was requested but before the
// fetch returned must not be overwritten by the stale server view. The skip
// is safe to drop, the settle hook requests a fresh refresh afterwards.
func (c *Controller) ReplaceSnapshot(collectionID string, items []models.Item) {
	s := c.state(collectionID)
	s.mu.Lock()
	if len(s.pendingIDs) > 0 && len(s.openMutations) > 0 {
		s.mu.Unlock()
		c.logger.Debug().Str("func", "ReplaceSnapshot").
			Str("collection_id", collectionID).
			Msg("snapshot discarded, local mutations in flight")
		return
	}
	s.items = cloneItems(items)
	s.mu.Unlock()

	if c.snapshots != nil {
		if err := c.snapshots.Save(collectionID, items); err != nil {
			c.logger.Err(err).Str("func", "ReplaceSnapshot").
				Str("collection_id", collectionID).
				Msg("error persisting snapshot")
		}
	}
}

// Retry clears the recorded error and requests a fresh authoritative
// snapshot of the collection.
func (c *Controller) Retry(collectionID string) {
	s := c.state(collectionID)
	s.mu.Lock()
	s.lastError = nil
	s.mu.Unlock()

	if c.refresher != nil {
		c.refresher.Request(collectionID)
	}
}
