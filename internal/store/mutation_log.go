package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

// MutationLogRepository is the SQLite-backed implementation of MutationLog.
type MutationLogRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewMutationLogRepository returns a MutationLog persisting entries in the
// given database.
func NewMutationLogRepository(db *DB, log *logger.Logger) *MutationLogRepository {
	return &MutationLogRepository{
		db:     db,
		logger: log,
	}
}

func (r *MutationLogRepository) Append(ctx context.Context, m models.Mutation) error {
	payload, err := json.Marshal(m)
	if err != nil {
		r.logger.Err(err).Str("func", "Append").Str("mutation_id", m.ID).Msg("error marshalling mutation payload")
		return fmt.Errorf("error marshalling mutation payload: %w", err)
	}

	query, args, err := sq.Insert("mutation_log").
		Columns("mutation_id", "collection_id", "attempts", "payload").
		Values(m.ID, m.CollectionID, m.Attempts, payload).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "Append").Msg("error building insert query")
		return ErrBuildingSQLQuery
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "Append").Str("mutation_id", m.ID).Msg("error inserting mutation")
		return ErrExecutingStatement
	}

	return nil
}

func (r *MutationLogRepository) Remove(ctx context.Context, id string) error {
	query, args, err := sq.Delete("mutation_log").
		Where(sq.Eq{"mutation_id": id}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "Remove").Msg("error building delete query")
		return ErrBuildingSQLQuery
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "Remove").Str("mutation_id", id).Msg("error deleting mutation")
		return ErrExecutingStatement
	}

	return nil
}

func (r *MutationLogRepository) UpdateAttempts(ctx context.Context, id string, attempts int) error {
	query, args, err := sq.Update("mutation_log").
		Set("attempts", attempts).
		Where(sq.Eq{"mutation_id": id}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "UpdateAttempts").Msg("error building update query")
		return ErrBuildingSQLQuery
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "UpdateAttempts").Str("mutation_id", id).Msg("error updating attempts")
		return ErrExecutingStatement
	}

	return nil
}

// All returns every logged mutation in append order. Rows whose payload no
// longer deserializes are deleted from the log and skipped.
func (r *MutationLogRepository) All(ctx context.Context) ([]models.Mutation, error) {
	query, args, err := sq.Select("mutation_id", "attempts", "payload").
		From("mutation_log").
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "All").Msg("error building select query")
		return nil, ErrBuildingSQLQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "All").Msg("error querying mutation log")
		return nil, ErrExecutingQuery
	}
	defer rows.Close()

	var mutations []models.Mutation
	var corrupt []string
	for rows.Next() {
		var id string
		var attempts int
		var payload []byte
		if err = rows.Scan(&id, &attempts, &payload); err != nil {
			r.logger.Err(err).Str("func", "All").Msg("error scanning mutation log row")
			return nil, ErrScanningRows
		}

		var m models.Mutation
		if err = json.Unmarshal(payload, &m); err != nil {
			r.logger.Err(err).Str("func", "All").Str("mutation_id", id).Msg("dropping corrupt mutation log entry")
			corrupt = append(corrupt, id)
			continue
		}
		// The attempts column is authoritative: UpdateAttempts does not
		// rewrite the payload.
		m.Attempts = attempts
		mutations = append(mutations, m)
	}
	if err = rows.Err(); err != nil {
		r.logger.Err(err).Str("func", "All").Msg("error iterating mutation log rows")
		return nil, ErrScanningRows
	}

	for _, id := range corrupt {
		if removeErr := r.Remove(ctx, id); removeErr != nil {
			r.logger.Err(removeErr).Str("func", "All").Str("mutation_id", id).Msg("error purging corrupt entry")
		}
	}

	return mutations, nil
}
