package file

import (
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/domain/user"
)

type (
	File struct {
		UUID      uuid.UUID
		OwnerID   user.ID
		OwnerUUID user.UUID

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

// LinkOptions carries the public-link settings of a single GenerateLink call.
// Expiry is tri-state: ExpiresIn set, ClearExpiry for an explicit null, and
// neither for "leave untouched".
type LinkOptions struct {
	ExpiresIn   *time.Duration
	ClearExpiry bool
	Password    string
}

// SharePatch is applied to a record as one atomic UPDATE. A nil PasswordHash
// leaves protection untouched; ExpiresAt is only written when TouchExpiry is
// set, and a nil value then clears the column.
type SharePatch struct {
	TouchExpiry  bool
	ExpiresAt    *time.Time
	PasswordHash *string
}

// Expired reports whether a public link for the record is past its deadline.
// Private records never expire regardless of expires_at.
func (f *File) Expired(now time.Time) bool {
	return f.IsPublic && f.ExpiresAt != nil && !f.ExpiresAt.After(now)
}
