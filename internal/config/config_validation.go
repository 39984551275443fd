package config

// validate checks that the final merged [ClientConfig] satisfies all
// invariants before it is used at startup. Defaults have already been merged
// in, so anything still missing was explicitly unset or contradictory.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.ProbeTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Queue.RetryBudget < 1 || cfg.Queue.BackoffInitial <= 0 || cfg.Queue.BackoffMax < cfg.Queue.BackoffInitial {
		return ErrInvalidQueueConfigs
	}

	if cfg.Listener.Debounce <= 0 {
		return ErrInvalidListenerConfigs
	}

	return nil
}
