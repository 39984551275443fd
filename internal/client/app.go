package client

import (
	"context"
	"fmt"

	"github.com/nickers/quickshop/internal/adapter"
	"github.com/nickers/quickshop/internal/cache"
	"github.com/nickers/quickshop/internal/config"
	"github.com/nickers/quickshop/internal/listener"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/internal/queue"
	"github.com/nickers/quickshop/internal/service"
	"github.com/nickers/quickshop/internal/store"
	"github.com/nickers/quickshop/internal/utils"
	"github.com/nickers/quickshop/internal/workers"
)

// App is the assembled sync engine: the exposed services plus the background
// machinery keeping them in sync with the backend.
type App struct {
	Lists   service.ListService
	Imports service.ImportService

	cache    *cache.Controller
	queue    *queue.Queue
	listener *listener.Listener
	workers  *workers.Workers
	probe    *workers.ReachabilityWorker
	db       *store.DB
	logger   *logger.Logger
}

// NewApp wires the engine from configuration: durable stores, transport,
// cache, queue, listener, services, and background workers. The durable
// mutation log is replayed before the services are exposed, keeping
// per-collection submission order intact across restarts.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log.GetChildLogger())
	if err != nil {
		return nil, fmt.Errorf("error connecting local database: %w", err)
	}
	mutationLog := store.NewMutationLogRepository(db, log.GetChildLogger())

	var snapshots store.SnapshotStore
	if cfg.Storage.SnapshotPath != "" {
		snapshots = store.NewFileSnapshotStore(cfg.Storage.SnapshotPath, log.GetChildLogger())
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, log.GetChildLogger())
	if err != nil {
		return nil, fmt.Errorf("error creating remote store: %w", err)
	}
	feed, err := adapter.NewWSChangeFeed(cfg.Adapter, log.GetChildLogger())
	if err != nil {
		return nil, fmt.Errorf("error creating change feed: %w", err)
	}

	ids := utils.NewUUIDGenerator()
	controller := cache.NewController(snapshots, ids, log.GetChildLogger())

	q := queue.NewQueue(mutationLog, queue.NewExecutor(remote, log.GetChildLogger()), remote, controller, cfg.Queue, log.GetChildLogger())

	l := listener.NewListener(feed, remote, controller, cfg.Listener, log.GetChildLogger())
	controller.SetRefresher(l)
	q.SetOnSettled(l.Request)

	// replay before the services are handed out: a fresh submission must
	// never overtake a logged mutation of the same collection
	if err = q.Resume(ctx); err != nil {
		return nil, fmt.Errorf("error replaying durable mutation log: %w", err)
	}

	probe := workers.NewReachabilityWorker(q, cfg.Adapter.ProbeTimeout*5, log.GetChildLogger())
	background := workers.NewWorkers(probe)

	return &App{
		Lists:    service.NewListService(controller, q, ids, log.GetChildLogger()),
		Imports:  service.NewImportService(controller, q, ids, log.GetChildLogger()),
		cache:    controller,
		queue:    q,
		listener: l,
		workers:  background,
		probe:    probe,
		db:       db,
		logger:   log,
	}, nil
}

// OpenList starts watching a collection: subscribes to its change feed and
// requests an initial authoritative snapshot.
func (a *App) OpenList(ctx context.Context, collectionID string) error {
	if err := a.listener.Watch(ctx, collectionID); err != nil {
		return fmt.Errorf("error watching collection %s: %w", collectionID, err)
	}
	a.listener.Request(collectionID)
	return nil
}

// CloseList stops watching a collection.
func (a *App) CloseList(collectionID string) {
	a.listener.Unwatch(collectionID)
}

// Run starts the background workers and blocks until the context is
// cancelled, then shuts the engine down in dependency order.
func (a *App) Run(ctx context.Context) error {
	a.workers.Run()
	a.logger.Info().Str("func", "Run").Msg("sync engine started")

	<-ctx.Done()

	a.probe.Stop()
	a.listener.Close()
	a.queue.Close()
	if err := a.db.Close(); err != nil {
		a.logger.Err(err).Str("func", "Run").Msg("error closing local database")
	}
	a.logger.Info().Str("func", "Run").Msg("sync engine stopped")

	return nil
}
