// Package queue serializes mutations per collection, executes them against
// the remote store with retry and backoff, and replays the durable mutation
// log after a restart. Mutations sharing a collection id run strictly in
// submission order; different collections proceed independently.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nickers/quickshop/internal/adapter"
	"github.com/nickers/quickshop/internal/config"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/internal/store"
	"github.com/nickers/quickshop/models"
)

// ErrRetryBudgetExhausted reports that a mutation kept failing with
// connectivity-class errors while the backend was reachable, and the online
// retry budget ran out.
var ErrRetryBudgetExhausted = errors.New("retry budget exhausted")

// Settler receives mutation outcomes. The cache controller implements it.
type Settler interface {
	// Settle resolves a mutation against its outcome.
	Settle(m models.Mutation, created []models.Item, err error)

	// MarkPending re-marks a replayed mutation's ids as pending.
	MarkPending(m models.Mutation)

	// SetOnline records the latest reachability verdict.
	SetOnline(online bool)
}

// Queue owns the per-collection workers and the durable log lifecycle.
type Queue struct {
	mu      sync.Mutex
	workers map[string]*worker

	// idMap translates optimistic client ids to server-assigned ids, so a
	// queued mutation that still references a since-reconciled record can
	// execute.
	idMap map[string]string

	log      store.MutationLog
	executor *Executor
	remote   adapter.RemoteStore
	settler  Settler
	cfg      config.Queue
	logger   *logger.Logger

	// onSettled is invoked after every settle, successful or not. The change
	// listener uses it to re-check deferred refreshes.
	onSettled func(collectionID string)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewQueue(log store.MutationLog, executor *Executor, remote adapter.RemoteStore, settler Settler, cfg config.Queue, lg *logger.Logger) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		workers:  make(map[string]*worker),
		idMap:    make(map[string]string),
		log:      log,
		executor: executor,
		remote:   remote,
		settler:  settler,
		cfg:      cfg,
		logger:   lg,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetOnSettled wires the settle hook. Must be set before the first Submit.
func (q *Queue) SetOnSettled(fn func(collectionID string)) {
	q.onSettled = fn
}

// Submit appends the mutation to the durable log and hands it to the
// collection's worker. A failed log append degrades durability but never
// loses the in-process mutation.
func (q *Queue) Submit(ctx context.Context, m models.Mutation) {
	if err := q.log.Append(ctx, m); err != nil {
		q.logger.Err(err).Str("func", "Submit").
			Str("mutation_id", m.ID).
			Msg("error appending mutation to durable log")
	}
	q.enqueue(m)
}

// Resume replays the durable log in original per-collection order: every
// restored mutation is re-marked pending and handed to its worker. Called on
// process start, before any new submissions.
func (q *Queue) Resume(ctx context.Context) error {
	mutations, err := q.log.All(ctx)
	if err != nil {
		q.logger.Err(err).Str("func", "Resume").Msg("error reading durable log")
		return fmt.Errorf("error reading durable log: %w", err)
	}

	for _, m := range mutations {
		q.settler.MarkPending(m)
		q.enqueue(m)
	}
	q.logger.Info().Str("func", "Resume").Int("count", len(mutations)).Msg("durable log replayed")

	return nil
}

// ProbeOnline runs the reachability probe and propagates the verdict.
func (q *Queue) ProbeOnline(ctx context.Context) bool {
	online := q.remote.Reachable(ctx)
	q.settler.SetOnline(online)
	return online
}

// Close stops all workers. Queued mutations stay in the durable log and are
// replayed on the next start.
func (q *Queue) Close() {
	q.cancel()
	q.wg.Wait()
}

func (q *Queue) enqueue(m models.Mutation) {
	q.mu.Lock()
	w, ok := q.workers[m.CollectionID]
	if !ok {
		w = newWorker(m.CollectionID)
		q.workers[m.CollectionID] = w
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			w.run(q.ctx, q)
		}()
	}
	q.mu.Unlock()

	w.push(m)
}

// process drives one mutation to a settle, retrying connectivity failures
// with exponential backoff. Attempts count toward the retry budget only
// while the backend probes as reachable; offline retries are unbounded.
func (q *Queue) process(ctx context.Context, m models.Mutation) {
	backoff := q.cfg.BackoffInitial
	for {
		q.rewriteIDs(&m)

		created, err := q.executor.Execute(ctx, m)
		if err == nil {
			q.settler.SetOnline(true)
			q.recordIDMappings(m, created)
			q.removeLogged(ctx, m.ID)
			q.settler.Settle(m, created, nil)
			q.notifySettled(m.CollectionID)
			return
		}

		if !adapter.IsTransient(err) {
			q.logger.Err(err).Str("func", "process").
				Str("mutation_id", m.ID).
				Str("collection_id", m.CollectionID).
				Msg("mutation rejected by backend")
			q.removeLogged(ctx, m.ID)
			q.settler.Settle(m, nil, err)
			q.notifySettled(m.CollectionID)
			return
		}

		online := q.remote.Reachable(ctx)
		q.settler.SetOnline(online)
		if online {
			m.Attempts++
			if updErr := q.log.UpdateAttempts(ctx, m.ID, m.Attempts); updErr != nil {
				q.logger.Err(updErr).Str("func", "process").
					Str("mutation_id", m.ID).
					Msg("error persisting attempt count")
			}
			if m.Attempts >= q.cfg.RetryBudget {
				q.logger.Err(err).Str("func", "process").
					Str("mutation_id", m.ID).
					Int("attempts", m.Attempts).
					Msg("retry budget exhausted")
				q.removeLogged(ctx, m.ID)
				q.settler.Settle(m, nil, fmt.Errorf("%w after %d attempts: %v", ErrRetryBudgetExhausted, m.Attempts, err))
				q.notifySettled(m.CollectionID)
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > q.cfg.BackoffMax {
			backoff = q.cfg.BackoffMax
		}
	}
}

func (q *Queue) removeLogged(ctx context.Context, id string) {
	if err := q.log.Remove(ctx, id); err != nil {
		q.logger.Err(err).Str("func", "removeLogged").
			Str("mutation_id", id).
			Msg("error removing settled mutation from durable log")
	}
}

func (q *Queue) notifySettled(collectionID string) {
	if q.onSettled != nil {
		q.onSettled(collectionID)
	}
}

// recordIDMappings remembers the server id assigned to each optimistic
// record, so later queued mutations referencing the client id still resolve.
func (q *Queue) recordIDMappings(m models.Mutation, created []models.Item) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch m.Type {
	case models.MutationCreate:
		if m.OptimisticID != "" && len(created) == 1 {
			q.idMap[m.OptimisticID] = created[0].ID.Value
		}
	case models.MutationBulkCreate:
		for i, id := range m.OptimisticIDs {
			if i < len(created) {
				q.idMap[id] = created[i].ID.Value
			}
		}
	}
}

// rewriteIDs swaps still-optimistic ids for their server assignments before
// execution. The per-collection ordering guarantees the owning create has
// settled by the time a follow-up mutation executes.
func (q *Queue) rewriteIDs(m *models.Mutation) {
	q.mu.Lock()
	defer q.mu.Unlock()

	resolve := func(id models.ItemID) models.ItemID {
		if !id.IsClient() {
			return id
		}
		if server, ok := q.idMap[id.Value]; ok {
			return models.ServerID(server)
		}
		return id
	}

	switch m.Type {
	case models.MutationUpdate:
		m.Update.ID = resolve(m.Update.ID)
	case models.MutationDelete:
		resolved := resolve(*m.Delete)
		m.Delete = &resolved
	case models.MutationReorder:
		for i := range m.Reorder {
			m.Reorder[i].ID = resolve(m.Reorder[i].ID)
		}
	}
}

// worker drains one collection's mutations strictly in FIFO order.
type worker struct {
	collectionID string

	mu      sync.Mutex
	backlog []models.Mutation
	wake    chan struct{}
}

func newWorker(collectionID string) *worker {
	return &worker{
		collectionID: collectionID,
		wake:         make(chan struct{}, 1),
	}
}

func (w *worker) push(m models.Mutation) {
	w.mu.Lock()
	w.backlog = append(w.backlog, m)
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *worker) pop() (models.Mutation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.backlog) == 0 {
		return models.Mutation{}, false
	}
	m := w.backlog[0]
	w.backlog = w.backlog[1:]
	return m, true
}

func (w *worker) run(ctx context.Context, q *Queue) {
	for {
		m, ok := w.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-w.wake:
				continue
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
		q.process(ctx, m)
	}
}
