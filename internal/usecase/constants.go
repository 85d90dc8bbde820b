package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// ReversalReferencePrefix prefixes the reference of reversing entries.
	ReversalReferencePrefix = "REV-"

	// MaxReportedUnbalancedEntries caps the entry ids returned by the
	// ledger consistency check.
	MaxReportedUnbalancedEntries = 100
)
