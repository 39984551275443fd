package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a remote store HTTP address
//	-ws-address remote change feed websocket address
//	-d local SQLite mutation log DSN
//	-snapshot whole-cache snapshot file path
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-probe-timeout reachability probe timeout (e.g., "2s")
//	-retry-budget online retry attempts per mutation
//	-debounce change listener debounce window (e.g., "300ms")
func ParseFlags() *ClientConfig {
	var httpAddress string
	var wsAddress string
	var databaseDSN string
	var snapshotPath string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var probeTimeout time.Duration
	var retryBudget int
	var debounce time.Duration

	flag.StringVar(&httpAddress, "a", "", "Remote store HTTP address")
	flag.StringVar(&wsAddress, "ws-address", "", "Change feed websocket address")
	flag.StringVar(&databaseDSN, "d", "", "Local mutation log DSN")
	flag.StringVar(&snapshotPath, "snapshot", "", "Snapshot file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&probeTimeout, "probe-timeout", 0, "Reachability probe timeout (e.g., 2s)")
	flag.IntVar(&retryBudget, "retry-budget", 0, "Online retry attempts per mutation")
	flag.DurationVar(&debounce, "debounce", 0, "Change listener debounce window (e.g., 300ms)")

	flag.Parse()

	return &ClientConfig{
		Adapter: Adapter{
			HTTPAddress:    httpAddress,
			WSAddress:      wsAddress,
			RequestTimeout: requestTimeout,
			ProbeTimeout:   probeTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			SnapshotPath: snapshotPath,
		},
		Queue: Queue{
			RetryBudget: retryBudget,
		},
		Listener: Listener{
			Debounce: debounce,
		},
		JSONFilePath: jsonConfigPath,
	}
}
