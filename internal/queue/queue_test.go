package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickers/quickshop/internal/adapter"
	"github.com/nickers/quickshop/internal/config"
	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

// fakeRemote is a hand-rolled RemoteStore stub: queue tests need per-call
// delays and call-order recording, which is awkward to express with
// generated mocks.
type fakeRemote struct {
	mu        sync.Mutex
	updateIDs []string
	createdID string

	updateDelay func(id string) time.Duration
	createErr   func() error
	updateErr   func() error
	reachable   bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{createdID: "srv-1", reachable: true}
}

func (f *fakeRemote) ListItems(_ context.Context, _ string) ([]models.Item, error) {
	return nil, nil
}

func (f *fakeRemote) CreateItem(_ context.Context, dto models.CreateItemDTO) (models.Item, error) {
	if f.createErr != nil {
		if err := f.createErr(); err != nil {
			return models.Item{}, err
		}
	}
	return models.Item{ID: models.ServerID(f.createdID), CollectionID: dto.CollectionID, Name: dto.Name}, nil
}

func (f *fakeRemote) UpdateItem(_ context.Context, id string, _ models.ItemPatch) (models.Item, error) {
	if f.updateDelay != nil {
		time.Sleep(f.updateDelay(id))
	}
	if f.updateErr != nil {
		if err := f.updateErr(); err != nil {
			return models.Item{}, err
		}
	}
	f.mu.Lock()
	f.updateIDs = append(f.updateIDs, id)
	f.mu.Unlock()
	return models.Item{ID: models.ServerID(id)}, nil
}

func (f *fakeRemote) DeleteItem(_ context.Context, _ string) error { return nil }

func (f *fakeRemote) ReorderItems(_ context.Context, _ []models.ReorderEntry) error { return nil }

func (f *fakeRemote) BulkCreateItems(_ context.Context, dtos []models.CreateItemDTO) ([]models.Item, error) {
	items := make([]models.Item, 0, len(dtos))
	for i, dto := range dtos {
		items = append(items, models.Item{ID: models.ServerID(fmt.Sprintf("srv-bulk-%d", i)), Name: dto.Name})
	}
	return items, nil
}

func (f *fakeRemote) Reachable(_ context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reachable
}

func (f *fakeRemote) setReachable(v bool) {
	f.mu.Lock()
	f.reachable = v
	f.mu.Unlock()
}

func (f *fakeRemote) updatedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.updateIDs))
	copy(out, f.updateIDs)
	return out
}

// settleRecord is one Settle invocation observed by the fake settler.
type settleRecord struct {
	mutation models.Mutation
	created  []models.Item
	err      error
}

type fakeSettler struct {
	mu       sync.Mutex
	settled  []settleRecord
	marked   []string
	settledC chan settleRecord
}

func newFakeSettler() *fakeSettler {
	return &fakeSettler{settledC: make(chan settleRecord, 16)}
}

func (f *fakeSettler) Settle(m models.Mutation, created []models.Item, err error) {
	rec := settleRecord{mutation: m, created: created, err: err}
	f.mu.Lock()
	f.settled = append(f.settled, rec)
	f.mu.Unlock()
	f.settledC <- rec
}

func (f *fakeSettler) MarkPending(m models.Mutation) {
	f.mu.Lock()
	f.marked = append(f.marked, m.ID)
	f.mu.Unlock()
}

func (f *fakeSettler) SetOnline(_ bool) {}

func (f *fakeSettler) waitSettle(t *testing.T) settleRecord {
	t.Helper()
	select {
	case rec := <-f.settledC:
		return rec
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settle")
		return settleRecord{}
	}
}

// fakeLog is an in-memory MutationLog.
type fakeLog struct {
	mu      sync.Mutex
	entries []models.Mutation
}

func (f *fakeLog) Append(_ context.Context, m models.Mutation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, m)
	return nil
}

func (f *fakeLog) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeLog) UpdateAttempts(_ context.Context, id string, attempts int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Attempts = attempts
		}
	}
	return nil
}

func (f *fakeLog) All(_ context.Context) ([]models.Mutation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Mutation, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeLog) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func testQueueConfig() config.Queue {
	return config.Queue{
		RetryBudget:    3,
		BackoffInitial: 5 * time.Millisecond,
		BackoffMax:     20 * time.Millisecond,
	}
}

func newTestQueue(t *testing.T, remote *fakeRemote, settler *fakeSettler, log *fakeLog) *Queue {
	t.Helper()
	lg := logger.Nop()
	q := NewQueue(log, NewExecutor(remote, lg), remote, settler, testQueueConfig(), lg)
	t.Cleanup(q.Close)
	return q
}

func updateMutation(id, collectionID, itemID string) models.Mutation {
	name := "renamed-" + id
	return models.Mutation{
		ID:           id,
		CollectionID: collectionID,
		Type:         models.MutationUpdate,
		Update: &models.UpdateItem{
			ID:    models.ServerID(itemID),
			Patch: models.ItemPatch{Name: &name},
		},
	}
}

func TestQueue_SuccessSettlesAndClearsLog(t *testing.T) {
	remote := newFakeRemote()
	settler := newFakeSettler()
	log := &fakeLog{}
	q := newTestQueue(t, remote, settler, log)

	q.Submit(context.Background(), updateMutation("mut-1", "list-1", "srv-1"))

	rec := settler.waitSettle(t)
	require.NoError(t, rec.err)
	assert.Equal(t, "mut-1", rec.mutation.ID)
	assert.Equal(t, 0, log.size())
}

func TestQueue_SameCollectionCompletesInSubmissionOrder(t *testing.T) {
	remote := newFakeRemote()
	// the first update's round-trip is much slower than the second's
	remote.updateDelay = func(id string) time.Duration {
		if id == "srv-slow" {
			return 50 * time.Millisecond
		}
		return 0
	}
	settler := newFakeSettler()
	q := newTestQueue(t, remote, settler, &fakeLog{})

	q.Submit(context.Background(), updateMutation("mut-1", "list-1", "srv-slow"))
	q.Submit(context.Background(), updateMutation("mut-2", "list-1", "srv-fast"))

	first := settler.waitSettle(t)
	second := settler.waitSettle(t)

	assert.Equal(t, "mut-1", first.mutation.ID)
	assert.Equal(t, "mut-2", second.mutation.ID)
	assert.Equal(t, []string{"srv-slow", "srv-fast"}, remote.updatedIDs())
}

func TestQueue_RejectionSettlesWithErrorAndClearsLog(t *testing.T) {
	remote := newFakeRemote()
	remote.updateErr = func() error { return adapter.ErrBadRequest }
	settler := newFakeSettler()
	log := &fakeLog{}
	q := newTestQueue(t, remote, settler, log)

	q.Submit(context.Background(), updateMutation("mut-1", "list-1", "srv-1"))

	rec := settler.waitSettle(t)
	assert.ErrorIs(t, rec.err, adapter.ErrBadRequest)
	assert.Equal(t, 0, log.size())
}

func TestQueue_TransientFailureRetriesUntilSuccess(t *testing.T) {
	remote := newFakeRemote()
	var calls int
	var callsMu sync.Mutex
	remote.updateErr = func() error {
		callsMu.Lock()
		defer callsMu.Unlock()
		calls++
		if calls < 2 {
			return fmt.Errorf("update request: %w: connection refused", adapter.ErrUnreachable)
		}
		return nil
	}
	settler := newFakeSettler()
	q := newTestQueue(t, remote, settler, &fakeLog{})

	q.Submit(context.Background(), updateMutation("mut-1", "list-1", "srv-1"))

	rec := settler.waitSettle(t)
	require.NoError(t, rec.err)
}

func TestQueue_OnlineRetryBudgetExhausts(t *testing.T) {
	remote := newFakeRemote()
	remote.updateErr = func() error {
		return fmt.Errorf("update request: %w: connection reset", adapter.ErrUnreachable)
	}
	settler := newFakeSettler()
	log := &fakeLog{}
	q := newTestQueue(t, remote, settler, log)

	q.Submit(context.Background(), updateMutation("mut-1", "list-1", "srv-1"))

	rec := settler.waitSettle(t)
	require.Error(t, rec.err)
	assert.ErrorIs(t, rec.err, ErrRetryBudgetExhausted)
	// the budget-exhausted settle must read as permanent, not transient
	assert.False(t, adapter.IsTransient(rec.err))
	assert.Equal(t, 0, log.size())
}

func TestQueue_OfflineRetriesAreUnbounded(t *testing.T) {
	remote := newFakeRemote()
	remote.setReachable(false)
	var calls int
	var callsMu sync.Mutex
	remote.updateErr = func() error {
		callsMu.Lock()
		defer callsMu.Unlock()
		calls++
		// fails more times than the online budget would allow
		if calls < 6 {
			return fmt.Errorf("update request: %w: network unreachable", adapter.ErrUnreachable)
		}
		return nil
	}
	settler := newFakeSettler()
	q := newTestQueue(t, remote, settler, &fakeLog{})

	q.Submit(context.Background(), updateMutation("mut-1", "list-1", "srv-1"))

	rec := settler.waitSettle(t)
	require.NoError(t, rec.err)
	// offline attempts never counted toward the budget
	assert.Equal(t, 0, rec.mutation.Attempts)
}

func TestQueue_ResumeReplaysLogInOrder(t *testing.T) {
	remote := newFakeRemote()
	settler := newFakeSettler()
	log := &fakeLog{}
	require.NoError(t, log.Append(context.Background(), updateMutation("mut-1", "list-1", "srv-a")))
	require.NoError(t, log.Append(context.Background(), updateMutation("mut-2", "list-1", "srv-b")))

	q := newTestQueue(t, remote, settler, log)
	require.NoError(t, q.Resume(context.Background()))

	first := settler.waitSettle(t)
	second := settler.waitSettle(t)

	assert.Equal(t, []string{"mut-1", "mut-2"}, settler.marked)
	assert.Equal(t, "mut-1", first.mutation.ID)
	assert.Equal(t, "mut-2", second.mutation.ID)
	assert.Equal(t, 0, log.size())
}

func TestQueue_RewritesOptimisticIDAfterCreateSettles(t *testing.T) {
	remote := newFakeRemote()
	remote.createdID = "srv-assigned"
	settler := newFakeSettler()
	q := newTestQueue(t, remote, settler, &fakeLog{})

	create := models.Mutation{
		ID:           "mut-1",
		CollectionID: "list-1",
		Type:         models.MutationCreate,
		Create:       &models.CreateItemDTO{CollectionID: "list-1", Name: "Milk"},
		OptimisticID: "tmp-1",
	}
	q.Submit(context.Background(), create)

	name := "Milk 2%"
	update := models.Mutation{
		ID:           "mut-2",
		CollectionID: "list-1",
		Type:         models.MutationUpdate,
		Update: &models.UpdateItem{
			ID:    models.ClientID("tmp-1"),
			Patch: models.ItemPatch{Name: &name},
		},
	}
	q.Submit(context.Background(), update)

	settler.waitSettle(t)
	settler.waitSettle(t)

	// the queued update executed with the server-assigned id
	assert.Equal(t, []string{"srv-assigned"}, remote.updatedIDs())
}

func TestQueue_DifferentCollectionsRunConcurrently(t *testing.T) {
	remote := newFakeRemote()
	remote.updateDelay = func(id string) time.Duration {
		if id == "srv-slow" {
			return 80 * time.Millisecond
		}
		return 0
	}
	settler := newFakeSettler()
	q := newTestQueue(t, remote, settler, &fakeLog{})

	q.Submit(context.Background(), updateMutation("mut-slow", "list-1", "srv-slow"))
	q.Submit(context.Background(), updateMutation("mut-fast", "list-2", "srv-fast"))

	// no ordering guarantee across keys: the fast collection finishes first
	first := settler.waitSettle(t)
	assert.Equal(t, "mut-fast", first.mutation.ID)
	settler.waitSettle(t)
}
