package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

const (
	insertMutationSQL = `INSERT INTO mutation_log (mutation_id,collection_id,attempts,payload) VALUES (?,?,?,?)`
	deleteMutationSQL = `DELETE FROM mutation_log WHERE mutation_id = ?`
	updateAttemptsSQL = `UPDATE mutation_log SET attempts = ? WHERE mutation_id = ?`
	selectMutationSQL = `SELECT mutation_id, attempts, payload FROM mutation_log ORDER BY seq ASC`
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestRepo(t *testing.T, db *sql.DB) *MutationLogRepository {
	t.Helper()
	storeDB := &DB{DB: db, logger: logger.Nop()}
	return NewMutationLogRepository(storeDB, logger.Nop())
}

func sampleMutation(id, collectionID string) models.Mutation {
	name := "Milk"
	return models.Mutation{
		ID:           id,
		CollectionID: collectionID,
		Type:         models.MutationCreate,
		Create: &models.CreateItemDTO{
			CollectionID: collectionID,
			Name:         name,
		},
		OptimisticID: "tmp-" + id,
		EnqueuedAt:   time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func mustMarshal(t *testing.T, m models.Mutation) []byte {
	t.Helper()
	data, err := json.Marshal(m)
	require.NoError(t, err)
	return data
}

func TestMutationLogRepository_Append(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	m := sampleMutation("mut-1", "list-1")

	mock.ExpectExec(regexp.QuoteMeta(insertMutationSQL)).
		WithArgs(m.ID, m.CollectionID, m.Attempts, mustMarshal(t, m)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), m)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutationLogRepository_Append_ExecError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)
	m := sampleMutation("mut-1", "list-1")

	mock.ExpectExec(regexp.QuoteMeta(insertMutationSQL)).
		WillReturnError(errors.New("disk I/O error"))

	err := repo.Append(context.Background(), m)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestMutationLogRepository_Remove(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectExec(regexp.QuoteMeta(deleteMutationSQL)).
		WithArgs("mut-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Remove(context.Background(), "mut-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutationLogRepository_Remove_AbsentIDIsNoOp(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectExec(regexp.QuoteMeta(deleteMutationSQL)).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Remove(context.Background(), "ghost")

	require.NoError(t, err)
}

func TestMutationLogRepository_UpdateAttempts(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectExec(regexp.QuoteMeta(updateAttemptsSQL)).
		WithArgs(2, "mut-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateAttempts(context.Background(), "mut-1", 2)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutationLogRepository_All(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	first := sampleMutation("mut-1", "list-1")
	second := sampleMutation("mut-2", "list-2")

	rows := sqlmock.NewRows([]string{"mutation_id", "attempts", "payload"}).
		AddRow(first.ID, 0, mustMarshal(t, first)).
		AddRow(second.ID, 2, mustMarshal(t, second))
	mock.ExpectQuery(regexp.QuoteMeta(selectMutationSQL)).WillReturnRows(rows)

	got, err := repo.All(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mut-1", got[0].ID)
	assert.Equal(t, "mut-2", got[1].ID)
	// attempts column overrides whatever the payload carried
	assert.Equal(t, 2, got[1].Attempts)
	assert.Equal(t, first.Create, got[0].Create)
}

func TestMutationLogRepository_All_DropsCorruptEntries(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	good := sampleMutation("mut-good", "list-1")

	rows := sqlmock.NewRows([]string{"mutation_id", "attempts", "payload"}).
		AddRow("mut-bad", 0, []byte(`{"id": not json`)).
		AddRow(good.ID, 0, mustMarshal(t, good))
	mock.ExpectQuery(regexp.QuoteMeta(selectMutationSQL)).WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta(deleteMutationSQL)).
		WithArgs("mut-bad").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.All(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mut-good", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutationLogRepository_All_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(regexp.QuoteMeta(selectMutationSQL)).
		WillReturnError(errors.New("database is locked"))

	got, err := repo.All(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.Nil(t, got)
}
