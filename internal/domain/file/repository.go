package file

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/domain/user"
)

type Repository interface {
	FetchFileByID(ctx context.Context, uuid uuid.UUID) (*File, error)
	FetchOwnerFiles(ctx context.Context, ownerID user.ID, now time.Time, page int) (Files, error)
	CreateFile(ctx context.Context, ownerID user.ID, req *File) (*File, error)
	// DeleteFile reports whether a row was actually removed; false means the
	// record was already gone (a concurrent delete or sweep got there first).
	DeleteFile(ctx context.Context, uuid uuid.UUID) (bool, error)

	// AppendSharedEmail is idempotent: adding an email that is already present
	// is a no-op. The returned record is nil when nothing changed.
	AppendSharedEmail(ctx context.Context, uuid uuid.UUID, email string) (*File, error)
	UpdateShareSettings(ctx context.Context, uuid uuid.UUID, patch SharePatch) (*File, error)
	FetchExpiredPublic(ctx context.Context, now time.Time, limit int) (Files, error)
}
