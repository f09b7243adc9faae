package services

import (
	"context"

	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/user"
)

// QuotaService is the storage ledger. Reserve and Release are two separate
// single-document writes; there is no transaction spanning the usage check
// and the usage update, so two concurrent reservations by the same user can
// both pass the check and jointly exceed the quota. That window is bounded
// by the concurrency of a single user's client and is accepted here.
type QuotaService struct {
	userRepository user.Repository
	logger         *zap.Logger
}

func NewQuotaService(
	userRepository user.Repository,
	logger *zap.Logger,
) ports.Quota {
	return &QuotaService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Reserve fails closed: nothing is written when the requested bytes do not
// fit under the quota.
func (qs *QuotaService) Reserve(ctx context.Context, userID user.ID, bytes uint64) error {
	used, total, found, err := qs.userRepository.FetchStorageUsage(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrProfileNotFound
	}
	if used+bytes > total {
		return ErrQuotaExceeded
	}

	return qs.userRepository.AddStorageUsage(ctx, userID, bytes)
}

// Release subtracts bytes from the recorded usage, clamped at zero. A
// release larger than what is recorded means some earlier accounting went
// wrong; the invariant is preserved and the mismatch surfaced as a warning.
func (qs *QuotaService) Release(ctx context.Context, userID user.ID, bytes uint64) error {
	used, _, found, err := qs.userRepository.FetchStorageUsage(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrProfileNotFound
	}
	if bytes > used {
		qs.logger.Warn("quota release exceeds recorded usage, clamping to zero",
			zap.Uint64("user_id", uint64(userID)),
			zap.Uint64("release_bytes", bytes),
			zap.Uint64("recorded_bytes", used),
		)
	}

	_, err = qs.userRepository.ReduceStorageUsage(ctx, userID, bytes)

	return err
}
