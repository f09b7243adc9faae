package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/user"
)

// UploadResult is the per-item outcome of a batch upload; one file failing
// never aborts its siblings.
type UploadResult struct {
	FileName string
	File     *file.File
	Err      error
}

type DeleteResult struct {
	FileID uuid.UUID
	Err    error
}

type FileService interface {
	FindUserFiles(ctx context.Context, ownerUUID user.UUID, page int) (file.Files, error)
	CreateUserFiles(ctx context.Context, ownerUUID user.UUID, in []*multipart.FileHeader) ([]UploadResult, error)
	DeleteFile(ctx context.Context, callerUUID user.UUID, fileID uuid.UUID) error
	DeleteFiles(ctx context.Context, callerUUID user.UUID, fileIDs []uuid.UUID) []DeleteResult
}
