package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nickers/quickshop/internal/config"
	"github.com/nickers/quickshop/internal/logger"
)

// DB wraps the SQLite connection used by the mutation log.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

const mutationLogSchema = `CREATE TABLE IF NOT EXISTS mutation_log (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	mutation_id   TEXT NOT NULL UNIQUE,
	collection_id TEXT NOT NULL,
	attempts      INTEGER NOT NULL DEFAULT 0,
	payload       BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mutation_log_collection ON mutation_log (collection_id, seq);`

// NewConnectSQLite opens (creating if necessary) the local SQLite database
// referenced by cfg.DSN, verifies the connection, and applies the mutation
// log schema.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if cfg.DSN != ":memory:" {
		if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file")
		}
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, mutationLogSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error applying schema")
		return nil, fmt.Errorf("error applying mutation log schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
