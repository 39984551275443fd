// Package client implements the sync-engine application runtime.
//
// It wires the optimistic cache, the mutation queue, the change listener,
// and the exposed services into a single process lifecycle: replaying the
// durable mutation log at startup, keeping the reachability verdict fresh,
// and shutting the background work down cleanly.
package client
