// Package config provides configuration loading, merging, and validation
// facilities for the quickshop client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults (fill remaining zero fields only)
//
// The main entry point is [GetClientConfig].
package config
