package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, envVars map[string]string) {
	t.Helper()
	for k, v := range envVars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"ADAPTER_ADDRESS":         "localhost:8080",
		"ADAPTER_WS_ADDRESS":      "ws://localhost:8080/ws",
		"ADAPTER_REQUEST_TIMEOUT": "30s",
		"ADAPTER_PROBE_TIMEOUT":   "2s",

		// Storage has a nested prefix: STORAGE_ + DB_
		"STORAGE_DB_DATABASE_URI": "quickshop.db",
		"STORAGE_SNAPSHOT_PATH":   "/var/cache/quickshop.json",

		"QUEUE_RETRY_BUDGET":    "5",
		"QUEUE_BACKOFF_INITIAL": "1s",
		"QUEUE_BACKOFF_MAX":     "30s",

		"LISTENER_DEBOUNCE": "300ms",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "ws://localhost:8080/ws", cfg.Adapter.WSAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Adapter.ProbeTimeout)

	assert.Equal(t, "quickshop.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/cache/quickshop.json", cfg.Storage.SnapshotPath)

	assert.Equal(t, 5, cfg.Queue.RetryBudget)
	assert.Equal(t, time.Second, cfg.Queue.BackoffInitial)
	assert.Equal(t, 30*time.Second, cfg.Queue.BackoffMax)

	assert.Equal(t, 300*time.Millisecond, cfg.Listener.Debounce)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, &ClientConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "not-a-duration"})

	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
}
