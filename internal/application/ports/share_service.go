package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/user"
)

type ShareService interface {
	ShareWithUser(ctx context.Context, callerUUID user.UUID, fileID uuid.UUID, email string) (*file.File, error)
	GenerateLink(ctx context.Context, callerUUID user.UUID, fileID uuid.UUID, opts file.LinkOptions) (string, error)
	VerifyPassword(ctx context.Context, fileID uuid.UUID, password string) (bool, error)
	ResolvePublicAccess(ctx context.Context, fileID uuid.UUID, now time.Time) (*file.File, error)
}
