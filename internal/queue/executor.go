package queue

import (
	"context"
	"fmt"

	"github.com/nickers/quickshop/internal/adapter"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

// Executor performs one logical mutation against the remote store. It is
// stateless beyond the operation itself; retry and ordering policy live in
// the queue.
type Executor struct {
	remote adapter.RemoteStore
	logger *logger.Logger
}

func NewExecutor(remote adapter.RemoteStore, log *logger.Logger) *Executor {
	return &Executor{
		remote: remote,
		logger: log,
	}
}

// Execute dispatches the mutation to the matching remote call. For create
// and bulk-create, the returned slice holds the server-side records in
// candidate order.
func (e *Executor) Execute(ctx context.Context, m models.Mutation) ([]models.Item, error) {
	switch m.Type {
	case models.MutationCreate:
		item, err := e.remote.CreateItem(ctx, *m.Create)
		if err != nil {
			return nil, err
		}
		return []models.Item{item}, nil

	case models.MutationUpdate:
		item, err := e.remote.UpdateItem(ctx, m.Update.ID.Value, m.Update.Patch)
		if err != nil {
			return nil, err
		}
		return []models.Item{item}, nil

	case models.MutationDelete:
		return nil, e.remote.DeleteItem(ctx, m.Delete.Value)

	case models.MutationReorder:
		return nil, e.remote.ReorderItems(ctx, m.Reorder)

	case models.MutationBulkCreate:
		return e.remote.BulkCreateItems(ctx, m.BulkCreate)

	default:
		e.logger.Error().Str("func", "Execute").
			Str("mutation_id", m.ID).
			Str("type", string(m.Type)).
			Msg("unknown mutation type")
		return nil, fmt.Errorf("unknown mutation type %q", m.Type)
	}
}
