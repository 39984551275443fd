// Package listener subscribes to remote change notifications and keeps the
// local cache fresh without clobbering in-flight optimistic state. Push
// notifications are debounced; push-triggered and settle-triggered refreshes
// converge into one coalescing refresh per collection.
package listener

import (
	"context"
	"sync"
	"time"

	"github.com/nickers/quickshop/internal/adapter"
	"github.com/nickers/quickshop/internal/config"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

// CacheState is the slice of the cache controller the listener needs: the
// deferral predicate and the snapshot sink.
type CacheState interface {
	HasPending(collectionID string) bool
	InFlight(collectionID string) bool
	ReplaceSnapshot(collectionID string, items []models.Item)
}

// Listener owns one watcher per open collection. It implements the refresh
// sink used by the cache controller's Retry.
type Listener struct {
	feed     adapter.ChangeFeed
	remote   adapter.RemoteStore
	cache    CacheState
	debounce time.Duration
	logger   *logger.Logger

	mu       sync.Mutex
	watchers map[string]*watcher
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewListener(feed adapter.ChangeFeed, remote adapter.RemoteStore, cache CacheState, cfg config.Listener, log *logger.Logger) *Listener {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener{
		feed:     feed,
		remote:   remote,
		cache:    cache,
		debounce: cfg.Debounce,
		logger:   log,
		watchers: make(map[string]*watcher),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Watch opens a change subscription for the collection and starts its
// refresh worker. Watching an already watched collection is a no-op.
func (l *Listener) Watch(ctx context.Context, collectionID string) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	if _, ok := l.watchers[collectionID]; ok {
		l.mu.Unlock()
		return nil
	}
	w := newWatcher(collectionID)
	l.watchers[collectionID] = w
	l.mu.Unlock()

	sub, err := l.feed.Subscribe(ctx, collectionID, func(_ models.ChangeEvent) {
		l.onChange(w)
	})
	if err != nil {
		l.mu.Lock()
		delete(l.watchers, collectionID)
		l.mu.Unlock()
		return err
	}
	w.sub = sub

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		l.refreshLoop(w)
	}()

	return nil
}

// Unwatch closes the collection's subscription and stops its worker.
func (l *Listener) Unwatch(collectionID string) {
	l.mu.Lock()
	w, ok := l.watchers[collectionID]
	if ok {
		delete(l.watchers, collectionID)
	}
	l.mu.Unlock()

	if ok {
		w.stop()
	}
}

// Request asks for a refresh of the collection. Requests coalesce: while a
// refresh is outstanding, further requests fold into it. Requests for
// unwatched collections refresh once without a subscription.
func (l *Listener) Request(collectionID string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	w, ok := l.watchers[collectionID]
	if ok {
		l.mu.Unlock()
		w.request()
		return
	}

	// no watcher: serve the one-shot refresh inline. The Add happens under
	// the lock so it cannot race a Close that already began waiting.
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		l.refresh(collectionID)
	}()
}

// Close stops every watcher and waits for the workers to finish. Requests
// arriving after Close are dropped.
func (l *Listener) Close() {
	l.mu.Lock()
	l.closed = true
	watchers := make([]*watcher, 0, len(l.watchers))
	for _, w := range l.watchers {
		watchers = append(watchers, w)
	}
	l.watchers = make(map[string]*watcher)
	l.mu.Unlock()

	for _, w := range watchers {
		w.stop()
	}
	l.cancel()
	l.wg.Wait()
}

// onChange restarts the debounce timer: each notification within the window
// resets it, so a burst produces a single refresh.
func (l *Listener) onChange(w *watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(l.debounce, w.request)
}

func (l *Listener) refreshLoop(w *watcher) {
	for {
		select {
		case <-l.ctx.Done():
			return
		case <-w.done:
			return
		case <-w.requests:
		}

		// a refresh while local optimistic work is still in flight could
		// install a stale snapshot over it; skip, the settle hook will
		// request again
		if l.cache.HasPending(w.collectionID) && l.cache.InFlight(w.collectionID) {
			l.logger.Debug().Str("func", "refreshLoop").
				Str("collection_id", w.collectionID).
				Msg("refresh deferred, local mutations in flight")
			continue
		}

		l.refresh(w.collectionID)
	}
}

func (l *Listener) refresh(collectionID string) {
	items, err := l.remote.ListItems(l.ctx, collectionID)
	if err != nil {
		l.logger.Err(err).Str("func", "refresh").
			Str("collection_id", collectionID).
			Msg("error fetching authoritative snapshot")
		return
	}
	l.cache.ReplaceSnapshot(collectionID, items)
}

type watcher struct {
	collectionID string
	sub          adapter.Subscription

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	requests chan struct{}
	done     chan struct{}
}

func newWatcher(collectionID string) *watcher {
	return &watcher{
		collectionID: collectionID,
		requests:     make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
}

func (w *watcher) request() {
	select {
	case w.requests <- struct{}{}:
	default:
	}
}

func (w *watcher) stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if w.sub != nil {
		w.sub.Unsubscribe()
	}
	close(w.done)
}
