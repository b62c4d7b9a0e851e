// Package constants centralizes shared defaults used across the client,
// transport, and CLI layers.
package constants

import "time"

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as instance lookups.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry configuration.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second

	// LowRetryMax is a conservative retry count for opt-in retry policies.
	LowRetryMax = 3
)

// Pagination.
const (
	// DefaultPageSize is the server default number of items per page.
	DefaultPageSize = 20

	// StandardPageSize is the common page size requested by the CLI.
	StandardPageSize = 40

	// MaxPageSize is the largest limit most servers will honor.
	MaxPageSize = 80
)

// Streaming.
const (
	// StreamReconnectWaitMax caps the reconnect backoff between attempts.
	StreamReconnectWaitMax = 30 * time.Second

	// StreamHandshakeTimeout bounds the initial stream connection.
	StreamHandshakeTimeout = 15 * time.Second
)

// Caching.
const (
	// DefaultCacheSize is the maximum number of entries in the memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default lifetime of a cached GET response.
	DefaultCacheTTL = 1 * time.Minute
)
