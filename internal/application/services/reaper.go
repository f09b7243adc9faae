package services

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	domain "file-share-api/internal/domain/file"
	"file-share-api/internal/infrastructure/mq"
)

const sweepBatchLimit = 500

// ReaperService deletes public files whose expiry has passed. It reuses the
// file service's delete path with the record's own owner as the authorizing
// caller — a privileged internal operation, the only place ownership checks
// are bypassed.
type ReaperService struct {
	files          *FileService
	fileRepository domain.Repository
	logger         *zap.Logger
	mCounter       *prometheus.CounterVec
}

func NewReaperService(
	files *FileService,
	fileRepository domain.Repository,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.Reaper {
	return &ReaperService{
		files:          files,
		fileRepository: fileRepository,
		logger:         logger,
		mCounter:       mCounter,
	}
}

// SweepOnce removes every expired public record it can and returns how many
// went away. Per-record failures are isolated; a record already deleted by
// a concurrent sweep or an owner counts as removed, not as an error, which
// makes the sweep safe to run concurrently with itself.
func (rs *ReaperService) SweepOnce(ctx context.Context) (int, error) {
	expired, err := rs.fileRepository.FetchExpiredPublic(ctx, time.Now().UTC(), sweepBatchLimit)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, rec := range expired {
		err := rs.files.removeRecord(ctx, rec, mq.ActionExpired)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, ErrNotFound):
			removed++
		default:
			rs.logger.Error("failed to reap expired file",
				zap.Stringer("file_uuid", rec.UUID),
				zap.Error(err),
			)
		}
	}

	if removed > 0 {
		rs.mCounter.WithLabelValues("files_reaped_total").Add(float64(removed))
	}

	return removed, nil
}
