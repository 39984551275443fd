package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidQueueConfigs indicates invalid mutation queue settings
	// (for example, a backoff cap below the initial backoff).
	ErrInvalidQueueConfigs = errors.New("invalid queue configuration")
	// ErrInvalidListenerConfigs indicates invalid change listener settings.
	ErrInvalidListenerConfigs = errors.New("invalid listener configuration")
)
