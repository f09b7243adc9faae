package file

import (
	"time"

	"github.com/google/uuid"
)

// File deliberately omits the password hash; digests never leave the service.
type (
	File struct {
		UUID                uuid.UUID  `json:"uuid"`
		FileName            string     `json:"file_name"`
		MimeType            string     `json:"mime_type"`
		SizeBytes           uint64     `json:"size_bytes"`
		URL                 string     `json:"url"`
		SecureURL           string     `json:"secure_url"`
		IsPublic            bool       `json:"is_public"`
		IsPasswordProtected bool       `json:"is_password_protected"`
		ExpiresAt           *time.Time `json:"expires_at,omitempty"`
		SharedWith          []string   `json:"shared_with"`
		UploadedAt          time.Time  `json:"uploaded_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}
)
