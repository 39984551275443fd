package service

import (
	"context"
	"time"

	"github.com/nickers/quickshop/internal/conflict"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

type importService struct {
	cache  Cache
	queue  MutationQueue
	ids    IDGenerator
	logger *logger.Logger
}

func NewImportService(cache Cache, queue MutationQueue, ids IDGenerator, log *logger.Logger) ImportService {
	return &importService{
		cache:  cache,
		queue:  queue,
		ids:    ids,
		logger: log,
	}
}

func (s *importService) ComputeConflicts(collectionID string, candidates []models.Item) models.BulkConflictResult {
	items := s.cache.Items(collectionID)
	active := make([]models.Item, 0, len(items))
	for _, item := range items {
		if !item.IsBought {
			active = append(active, item)
		}
	}
	return conflict.ComputeBulkConflicts(active, candidates, collectionID)
}

func (s *importService) Import(ctx context.Context, collectionID string, candidates []models.Item) (models.BulkConflictResult, error) {
	result := s.ComputeConflicts(collectionID, candidates)
	if len(result.Conflicts) > 0 {
		s.logger.Debug().Str("func", "Import").
			Str("collection_id", collectionID).
			Int("conflicts", len(result.Conflicts)).
			Msg("import requires conflict selection")
		return result, nil
	}

	s.submitBulkCreate(ctx, collectionID, result.NonConflicting)
	return result, nil
}

func (s *importService) ResolveBulkImport(ctx context.Context, collectionID string, result models.BulkConflictResult, selected []models.ItemID) error {
	s.submitBulkCreate(ctx, collectionID, result.NonConflicting)

	selectedSet := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		selectedSet[id.Value] = struct{}{}
	}

	for _, c := range result.Conflicts {
		if _, ok := selectedSet[c.ExistingItem.ID.Value]; !ok {
			continue
		}
		quantity := c.SuggestedQuantity
		m := models.Mutation{
			ID:           s.ids.Generate(),
			CollectionID: collectionID,
			Type:         models.MutationUpdate,
			Update: &models.UpdateItem{
				ID:    c.ExistingItem.ID,
				Patch: models.ItemPatch{Quantity: &quantity, SetQuantity: true},
			},
			EnqueuedAt: time.Now(),
		}
		s.cache.ApplyUpdate(&m)
		s.queue.Submit(ctx, m)
	}

	return nil
}

func (s *importService) submitBulkCreate(ctx context.Context, collectionID string, dtos []models.CreateItemDTO) {
	if len(dtos) == 0 {
		return
	}

	m := models.Mutation{
		ID:           s.ids.Generate(),
		CollectionID: collectionID,
		Type:         models.MutationBulkCreate,
		BulkCreate:   dtos,
		EnqueuedAt:   time.Now(),
	}
	s.cache.ApplyBulkCreate(&m)
	s.queue.Submit(ctx, m)
}
