package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"file-share-api/internal/application/ports"
	domain "file-share-api/internal/domain/file"
	"file-share-api/internal/domain/user"
	"file-share-api/internal/infrastructure/credhash"
)

// Public links address the file by id only; there is no secret embedded in
// the URL, access control happens server-side on resolution.
const publicLinkFormat = "/files/%s"

// ShareService reconciles the three gating dimensions of a shared file:
// visibility (public flag), time (expiry) and secret (password). Two racing
// mutations on the same file are last-write-wins; there is no per-record
// version token in this design.
type ShareService struct {
	fileRepository domain.Repository
	mCounter       *prometheus.CounterVec
}

func NewShareService(
	fileRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.ShareService {
	return &ShareService{
		fileRepository: fileRepository,
		mCounter:       mCounter,
	}
}

func (ss *ShareService) fetchOwned(ctx context.Context, callerUUID user.UUID, fileID uuid.UUID) (*domain.File, error) {
	rec, err := ss.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.OwnerUUID != callerUUID {
		return nil, ErrUnauthorized
	}

	return rec, nil
}

// ShareWithUser is idempotent: sharing with an email that already has a
// grant changes nothing and is not an error.
func (ss *ShareService) ShareWithUser(ctx context.Context, callerUUID user.UUID, fileID uuid.UUID, email string) (*domain.File, error) {
	rec, err := ss.fetchOwned(ctx, callerUUID, fileID)
	if err != nil {
		return nil, err
	}

	updated, err := ss.fileRepository.AppendSharedEmail(ctx, fileID, email)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// grant already present
		return rec, nil
	}

	ss.mCounter.WithLabelValues("files_shared_total").Inc()

	return updated, nil
}

// GenerateLink makes the file public and applies the requested expiry and
// password settings in one atomic record update.
//
// Expiry is tri-state: a duration moves the deadline, ClearExpiry removes
// the field entirely ("no expiry", not "expire at epoch"), and neither
// leaves it untouched. A password is only stored while the file is not yet
// protected; once protected, later passwords are silently ignored — the
// protection is immutable for the record's lifetime.
func (ss *ShareService) GenerateLink(ctx context.Context, callerUUID user.UUID, fileID uuid.UUID, opts domain.LinkOptions) (string, error) {
	rec, err := ss.fetchOwned(ctx, callerUUID, fileID)
	if err != nil {
		return "", err
	}

	patch := domain.SharePatch{}
	switch {
	case opts.ClearExpiry:
		patch.TouchExpiry = true
	case opts.ExpiresIn != nil:
		t := time.Now().UTC().Add(*opts.ExpiresIn)
		patch.TouchExpiry = true
		patch.ExpiresAt = &t
	}

	if opts.Password != "" && !rec.IsPasswordProtected {
		h := credhash.Hash(opts.Password)
		patch.PasswordHash = &h
	}

	updated, err := ss.fileRepository.UpdateShareSettings(ctx, fileID, patch)
	if err != nil {
		return "", err
	}
	if updated == nil {
		// deleted between fetch and update
		return "", ErrNotFound
	}

	ss.mCounter.WithLabelValues("links_generated_total").Inc()

	return fmt.Sprintf(publicLinkFormat, fileID), nil
}

// VerifyPassword is open access for unprotected files. The supplied
// plaintext is hashed and compared, never stored and never logged.
func (ss *ShareService) VerifyPassword(ctx context.Context, fileID uuid.UUID, password string) (bool, error) {
	rec, err := ss.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, ErrNotFound
	}

	if !rec.IsPasswordProtected || rec.PasswordHash == nil {
		return true, nil
	}

	return credhash.Verify(password, *rec.PasswordHash), nil
}

// ResolvePublicAccess is the single gate for unauthenticated viewers. It
// never vouches for the password dimension: callers must still run
// VerifyPassword on protected files before releasing the download URL.
func (ss *ShareService) ResolvePublicAccess(ctx context.Context, fileID uuid.UUID, now time.Time) (*domain.File, error) {
	rec, err := ss.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if !rec.IsPublic {
		return nil, ErrFileNotPublic
	}
	if rec.Expired(now) {
		return nil, ErrFileExpired
	}

	return rec, nil
}
