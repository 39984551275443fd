package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nickers/quickshop/internal/conflict"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

const maxNameLength = 100

type listService struct {
	cache  Cache
	queue  MutationQueue
	ids    IDGenerator
	logger *logger.Logger

	mu        sync.Mutex
	conflicts map[string]models.ConflictState
}

func NewListService(cache Cache, queue MutationQueue, ids IDGenerator, log *logger.Logger) ListService {
	return &listService{
		cache:     cache,
		queue:     queue,
		ids:       ids,
		logger:    log,
		conflicts: make(map[string]models.ConflictState),
	}
}

func (s *listService) Items(collectionID string) (active, bought []models.Item) {
	for _, item := range s.cache.Items(collectionID) {
		if item.IsBought {
			bought = append(bought, item)
		} else {
			active = append(active, item)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].SortOrder < active[j].SortOrder })
	sort.SliceStable(bought, func(i, j int) bool { return bought[i].SortOrder < bought[j].SortOrder })
	return active, bought
}

func (s *listService) PendingIDs(collectionID string) []string {
	return s.cache.PendingIDs(collectionID)
}

func (s *listService) SyncStatus(collectionID string) models.SyncStatus {
	return s.cache.Status(collectionID)
}

func (s *listService) LastError(collectionID string) error {
	return s.cache.LastError(collectionID)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len([]rune(name)) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func (s *listService) AddItem(ctx context.Context, collectionID, name string, quantity *string) (models.ConflictState, error) {
	if err := validateName(name); err != nil {
		return models.ConflictState{}, err
	}

	active, _ := s.Items(collectionID)
	if existing := conflict.FindDuplicate(active, name); existing != nil {
		state := models.ConflictState{
			IsOpen:            true,
			ConflictingItem:   existing,
			PendingName:       name,
			PendingQuantity:   quantity,
			SuggestedQuantity: conflict.MergeQuantity(existing.Quantity, quantity),
		}
		s.mu.Lock()
		s.conflicts[collectionID] = state
		s.mu.Unlock()
		s.logger.Debug().Str("func", "AddItem").
			Str("collection_id", collectionID).
			Str("name", name).
			Msg("duplicate active item, conflict opened")
		return state, nil
	}

	m := models.Mutation{
		ID:           s.ids.Generate(),
		CollectionID: collectionID,
		Type:         models.MutationCreate,
		Create: &models.CreateItemDTO{
			CollectionID: collectionID,
			Name:         name,
			Quantity:     quantity,
			SortOrder:    len(active),
		},
		EnqueuedAt: time.Now(),
	}
	s.cache.ApplyCreate(&m)
	s.queue.Submit(ctx, m)

	return models.ConflictState{}, nil
}

func (s *listService) Conflict(collectionID string) models.ConflictState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conflicts[collectionID]
}

func (s *listService) ResolveConflict(ctx context.Context, collectionID, quantity string) error {
	s.mu.Lock()
	state, ok := s.conflicts[collectionID]
	if !ok || !state.IsOpen {
		s.mu.Unlock()
		return ErrNoOpenConflict
	}
	delete(s.conflicts, collectionID)
	s.mu.Unlock()

	// merge into the existing item, never create a second one
	return s.UpdateItemFields(ctx, collectionID, state.ConflictingItem.ID, models.ItemPatch{
		Quantity:    &quantity,
		SetQuantity: true,
	})
}

func (s *listService) CancelConflict(collectionID string) {
	s.mu.Lock()
	delete(s.conflicts, collectionID)
	s.mu.Unlock()
}

func (s *listService) ToggleItem(ctx context.Context, collectionID string, id models.ItemID, bought bool) error {
	return s.UpdateItemFields(ctx, collectionID, id, models.ItemPatch{IsBought: &bought})
}

func (s *listService) DeleteItem(ctx context.Context, collectionID string, id models.ItemID) error {
	m := models.Mutation{
		ID:           s.ids.Generate(),
		CollectionID: collectionID,
		Type:         models.MutationDelete,
		Delete:       &id,
		EnqueuedAt:   time.Now(),
	}
	s.cache.ApplyDelete(&m)
	s.queue.Submit(ctx, m)
	return nil
}

func (s *listService) UpdateItemFields(ctx context.Context, collectionID string, id models.ItemID, patch models.ItemPatch) error {
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return err
		}
	}

	m := models.Mutation{
		ID:           s.ids.Generate(),
		CollectionID: collectionID,
		Type:         models.MutationUpdate,
		Update:       &models.UpdateItem{ID: id, Patch: patch},
		EnqueuedAt:   time.Now(),
	}
	s.cache.ApplyUpdate(&m)
	s.queue.Submit(ctx, m)
	return nil
}

func (s *listService) ReorderItems(ctx context.Context, collectionID string, orderedActive []models.ItemID) error {
	entries := make([]models.ReorderEntry, 0, len(orderedActive))
	for i, id := range orderedActive {
		entries = append(entries, models.ReorderEntry{ID: id, SortOrder: i})
	}

	m := models.Mutation{
		ID:           s.ids.Generate(),
		CollectionID: collectionID,
		Type:         models.MutationReorder,
		Reorder:      entries,
		EnqueuedAt:   time.Now(),
	}
	s.cache.ApplyReorder(&m)
	s.queue.Submit(ctx, m)
	return nil
}

func (s *listService) RetrySync(collectionID string) {
	s.cache.Retry(collectionID)
}
