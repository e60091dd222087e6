package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPendingMarker is stored under a claimed idempotency key
	// until the first request finishes.
	IdempotencyPendingMarker = "processing"

	// StatsCacheKey prefixes the serialized organization-wide stats. The
	// current StatsVersionKey value is appended to it.
	StatsCacheKey = "stats:v1"

	// StatsVersionKey is a counter bumped after every mutation.
	StatsVersionKey = "stats:version"

	// DefaultStatsCacheTTL bounds how stale cached stats may get when an
	// invalidation is lost.
	DefaultStatsCacheTTL = 30 * time.Second
)
