package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for the quickshop
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file, with built-in defaults filling whatever remains unset.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// Adapter holds network settings for the remote store transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the durable local persistence:
	// the SQLite mutation log and the snapshot file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Queue holds retry and backoff settings for the mutation queue.
	Queue Queue `envPrefix:"QUEUE_"`

	// Listener holds settings for the remote change listener.
	Listener Listener `envPrefix:"LISTENER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds network settings used by the client transport layer.
type Adapter struct {
	// HTTPAddress is the HTTP endpoint of the remote store.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// WSAddress is the websocket endpoint of the change feed. When empty it
	// is derived from HTTPAddress by swapping the scheme.
	// Env: ADAPTER_WS_ADDRESS
	WSAddress string `env:"WS_ADDRESS"`

	// RequestTimeout is the default timeout for outbound client requests
	// (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ProbeTimeout bounds the lightweight reachability probe. The probe must
	// stay cheap, so this is kept short.
	// Env: ADAPTER_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`
}

// Storage groups the configuration for all local persistence backends.
type Storage struct {
	// DB holds the SQLite connection settings for the durable mutation log.
	DB DB `envPrefix:"DB_"`

	// SnapshotPath is the path of the JSON file holding the whole-cache
	// snapshot restored at startup. Empty disables snapshot persistence.
	// Env: STORAGE_SNAPSHOT_PATH
	SnapshotPath string `env:"SNAPSHOT_PATH"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite connection string (a file path, or ":memory:" for
	// tests).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Queue holds retry policy settings for the mutation queue.
type Queue struct {
	// RetryBudget is the number of attempts a mutation gets while the client
	// is online before it is reported as an error. Retries while offline are
	// unbounded.
	// Env: QUEUE_RETRY_BUDGET
	RetryBudget int `env:"RETRY_BUDGET"`

	// BackoffInitial is the first retry delay after a connectivity failure.
	// Env: QUEUE_BACKOFF_INITIAL
	BackoffInitial time.Duration `env:"BACKOFF_INITIAL"`

	// BackoffMax caps the exponential backoff.
	// Env: QUEUE_BACKOFF_MAX
	BackoffMax time.Duration `env:"BACKOFF_MAX"`
}

// Listener holds settings for the remote change listener.
type Listener struct {
	// Debounce is the window used to coalesce bursts of change
	// notifications; each new notification resets the timer.
	// Env: LISTENER_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE"`
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources (env, flags, JSON file, defaults).
//
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig() (*ClientConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

func defaultConfig() *ClientConfig {
	return &ClientConfig{
		Adapter: Adapter{
			RequestTimeout: 30 * time.Second,
			ProbeTimeout:   2 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "quickshop.db"},
		},
		Queue: Queue{
			RetryBudget:    3,
			BackoffInitial: time.Second,
			BackoffMax:     30 * time.Second,
		},
		Listener: Listener{
			Debounce: 300 * time.Millisecond,
		},
	}
}
