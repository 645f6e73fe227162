// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// ProviderRequest caps a single call to the payment provider API.
const ProviderRequest = 10 * time.Second

// ScriptFetch caps a single upstream attempt when proxying the provider script.
const ScriptFetch = 5 * time.Second
