package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID        uint64
		UUID      uuid.UUID
		UserID    uint64
		OwnerUUID uuid.UUID

		FileName  string
		MimeType  string
		SizeBytes uint64

		Bucket     string
		StorageKey string
		URL        string
		SecureURL  string

		IsPublic            bool
		IsPasswordProtected bool
		PasswordHash        *string
		ExpiresAt           *time.Time
		SharedWith          []string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Files []*File
)
