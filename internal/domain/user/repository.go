package user

import (
	"context"
)

type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)

	// Quota ledger primitives. FetchStorageUsage returns found=false when the
	// profile does not exist. ReduceStorageUsage clamps at zero and returns
	// the usage recorded after the update.
	FetchStorageUsage(ctx context.Context, id ID) (used, total uint64, found bool, err error)
	AddStorageUsage(ctx context.Context, id ID, bytes uint64) error
	ReduceStorageUsage(ctx context.Context, id ID, bytes uint64) (uint64, error)
}
