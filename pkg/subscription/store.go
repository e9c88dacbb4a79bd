package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for subscription persistence.
// Each account has at most one record, so AccountID is the key.
//
// The one-trial-per-account check in Lifecycle.StartTrial is a
// read-then-write: in a multi-writer environment the backing store must
// enforce uniqueness on AccountID (constraint or compare-and-swap) for
// the check to be race-free.
type Store interface {
	// Get retrieves a record by account ID.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, accountID uuid.UUID) (*Record, error)

	// Save creates or updates a record, keyed by AccountID.
	Save(ctx context.Context, record *Record) error
}
