package ports

import (
	"context"

	"file-share-api/internal/domain/user"
)

// Quota is the storage ledger. Reserve is check-then-write without a lock:
// two concurrent reservations by the same user can both pass the check and
// jointly exceed the quota. That race is accepted; the underlying store has
// no multi-document transactions to close it with.
type Quota interface {
	Reserve(ctx context.Context, userID user.ID, bytes uint64) error
	Release(ctx context.Context, userID user.ID, bytes uint64) error
}
