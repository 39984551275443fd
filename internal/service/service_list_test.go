package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/internal/mock"
	"github.com/nickers/quickshop/models"
)

func strPtr(v string) *string { return &v }

func newMockedListService(t *testing.T) (ListService, *mock.MockCache, *mock.MockMutationQueue, *mock.MockIDGenerator) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cacheMock := mock.NewMockCache(ctrl)
	queueMock := mock.NewMockMutationQueue(ctrl)
	ids := mock.NewMockIDGenerator(ctrl)
	return NewListService(cacheMock, queueMock, ids, logger.Nop()), cacheMock, queueMock, ids
}

func TestAddItem_NoConflictQueuesCreate(t *testing.T) {
	svc, cacheMock, queueMock, ids := newMockedListService(t)

	cacheMock.EXPECT().Items("list-1").Return([]models.Item{
		{ID: models.ServerID("srv-1"), Name: "Bread", SortOrder: 0},
	})
	ids.EXPECT().Generate().Return("mut-1")
	cacheMock.EXPECT().ApplyCreate(gomock.Any())

	var submitted models.Mutation
	queueMock.EXPECT().Submit(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, m models.Mutation) { submitted = m })

	state, err := svc.AddItem(context.Background(), "list-1", "Milk", strPtr("2"))

	require.NoError(t, err)
	assert.False(t, state.IsOpen)
	assert.Equal(t, "mut-1", submitted.ID)
	assert.Equal(t, models.MutationCreate, submitted.Type)
	require.NotNil(t, submitted.Create)
	assert.Equal(t, "Milk", submitted.Create.Name)
	// appended at the end of the active partition
	assert.Equal(t, 1, submitted.Create.SortOrder)
}

func TestAddItem_DuplicateActiveNameOpensConflict(t *testing.T) {
	svc, cacheMock, _, _ := newMockedListService(t)

	existing := models.Item{ID: models.ServerID("srv-1"), Name: "Milk", Quantity: strPtr("1")}
	cacheMock.EXPECT().Items("list-1").Return([]models.Item{existing})

	// no ApplyCreate, no Submit: the conflict replaces the mutation
	state, err := svc.AddItem(context.Background(), "list-1", "milk", strPtr("2"))

	require.NoError(t, err)
	assert.True(t, state.IsOpen)
	require.NotNil(t, state.ConflictingItem)
	assert.Equal(t, "Milk", state.ConflictingItem.Name)
	assert.Equal(t, "milk", state.PendingName)
	assert.Equal(t, "3", state.SuggestedQuantity)
	assert.True(t, svc.Conflict("list-1").IsOpen)
}

func TestAddItem_BoughtItemDoesNotConflict(t *testing.T) {
	svc, cacheMock, queueMock, ids := newMockedListService(t)

	cacheMock.EXPECT().Items("list-1").Return([]models.Item{
		{ID: models.ServerID("srv-1"), Name: "Milk", IsBought: true},
	})
	ids.EXPECT().Generate().Return("mut-1")
	cacheMock.EXPECT().ApplyCreate(gomock.Any())
	queueMock.EXPECT().Submit(gomock.Any(), gomock.Any())

	state, err := svc.AddItem(context.Background(), "list-1", "Milk", nil)

	require.NoError(t, err)
	assert.False(t, state.IsOpen)
}

func TestAddItem_ValidatesName(t *testing.T) {
	svc, _, _, _ := newMockedListService(t)

	_, err := svc.AddItem(context.Background(), "list-1", "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyName)

	long := make([]rune, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.AddItem(context.Background(), "list-1", string(long), nil)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestResolveConflict_UpdatesExistingItem(t *testing.T) {
	svc, cacheMock, queueMock, ids := newMockedListService(t)

	existing := models.Item{ID: models.ServerID("srv-1"), Name: "Milk", Quantity: strPtr("1")}
	cacheMock.EXPECT().Items("list-1").Return([]models.Item{existing})
	_, err := svc.AddItem(context.Background(), "list-1", "Milk", strPtr("2"))
	require.NoError(t, err)

	ids.EXPECT().Generate().Return("mut-1")
	var applied *models.Mutation
	cacheMock.EXPECT().ApplyUpdate(gomock.Any()).
		Do(func(m *models.Mutation) { applied = m })
	queueMock.EXPECT().Submit(gomock.Any(), gomock.Any())

	require.NoError(t, svc.ResolveConflict(context.Background(), "list-1", "3"))

	require.NotNil(t, applied)
	assert.Equal(t, models.MutationUpdate, applied.Type)
	assert.Equal(t, models.ServerID("srv-1"), applied.Update.ID)
	require.NotNil(t, applied.Update.Patch.Quantity)
	assert.Equal(t, "3", *applied.Update.Patch.Quantity)
	assert.True(t, applied.Update.Patch.SetQuantity)

	assert.False(t, svc.Conflict("list-1").IsOpen)
	assert.ErrorIs(t, svc.ResolveConflict(context.Background(), "list-1", "3"), ErrNoOpenConflict)
}

func TestCancelConflict_DiscardsWithoutMutation(t *testing.T) {
	svc, cacheMock, _, _ := newMockedListService(t)

	existing := models.Item{ID: models.ServerID("srv-1"), Name: "Milk"}
	cacheMock.EXPECT().Items("list-1").Return([]models.Item{existing})
	_, err := svc.AddItem(context.Background(), "list-1", "Milk", nil)
	require.NoError(t, err)

	svc.CancelConflict("list-1")

	assert.False(t, svc.Conflict("list-1").IsOpen)
	assert.ErrorIs(t, svc.ResolveConflict(context.Background(), "list-1", "1"), ErrNoOpenConflict)
}

func TestToggleItem_SubmitsIsBoughtPatch(t *testing.T) {
	svc, cacheMock, queueMock, ids := newMockedListService(t)

	ids.EXPECT().Generate().Return("mut-1")
	var applied *models.Mutation
	cacheMock.EXPECT().ApplyUpdate(gomock.Any()).
		Do(func(m *models.Mutation) { applied = m })
	queueMock.EXPECT().Submit(gomock.Any(), gomock.Any())

	require.NoError(t, svc.ToggleItem(context.Background(), "list-1", models.ServerID("srv-1"), true))

	require.NotNil(t, applied.Update.Patch.IsBought)
	assert.True(t, *applied.Update.Patch.IsBought)
}

func TestDeleteItem_SubmitsDelete(t *testing.T) {
	svc, cacheMock, queueMock, ids := newMockedListService(t)

	ids.EXPECT().Generate().Return("mut-1")
	var applied *models.Mutation
	cacheMock.EXPECT().ApplyDelete(gomock.Any()).
		Do(func(m *models.Mutation) { applied = m })
	queueMock.EXPECT().Submit(gomock.Any(), gomock.Any())

	require.NoError(t, svc.DeleteItem(context.Background(), "list-1", models.ServerID("srv-1")))

	assert.Equal(t, models.MutationDelete, applied.Type)
	assert.Equal(t, "srv-1", applied.Delete.Value)
}

func TestReorderItems_AssignsContiguousOrders(t *testing.T) {
	svc, cacheMock, queueMock, ids := newMockedListService(t)

	ids.EXPECT().Generate().Return("mut-1")
	var applied *models.Mutation
	cacheMock.EXPECT().ApplyReorder(gomock.Any()).
		Do(func(m *models.Mutation) { applied = m })
	queueMock.EXPECT().Submit(gomock.Any(), gomock.Any())

	ordered := []models.ItemID{models.ServerID("b"), models.ServerID("a"), models.ServerID("c")}
	require.NoError(t, svc.ReorderItems(context.Background(), "list-1", ordered))

	require.Len(t, applied.Reorder, 3)
	for i, entry := range applied.Reorder {
		assert.Equal(t, ordered[i], entry.ID)
		assert.Equal(t, i, entry.SortOrder)
	}
}

func TestItems_PartitionsAndSortsByOrder(t *testing.T) {
	svc, cacheMock, _, _ := newMockedListService(t)

	cacheMock.EXPECT().Items("list-1").Return([]models.Item{
		{ID: models.ServerID("c"), Name: "Cheese", IsBought: true, SortOrder: 3},
		{ID: models.ServerID("b"), Name: "Bread", SortOrder: 1},
		{ID: models.ServerID("a"), Name: "Apples", SortOrder: 0},
		{ID: models.ServerID("d"), Name: "Dates", IsBought: true, SortOrder: 2},
	})

	active, bought := svc.Items("list-1")

	require.Len(t, active, 2)
	assert.Equal(t, "Apples", active[0].Name)
	assert.Equal(t, "Bread", active[1].Name)
	require.Len(t, bought, 2)
	assert.Equal(t, "Dates", bought[0].Name)
	assert.Equal(t, "Cheese", bought[1].Name)
}

func TestRetrySync_DelegatesToCache(t *testing.T) {
	svc, cacheMock, _, _ := newMockedListService(t)

	cacheMock.EXPECT().Retry("list-1")

	svc.RetrySync("list-1")
}
