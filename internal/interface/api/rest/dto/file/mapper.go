package file

import (
	"file-share-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	var f = File{
		UUID:                fDomain.UUID,
		FileName:            fDomain.FileName,
		MimeType:            fDomain.MimeType,
		SizeBytes:           fDomain.SizeBytes,
		URL:                 fDomain.URL,
		SecureURL:           fDomain.SecureURL,
		IsPublic:            fDomain.IsPublic,
		IsPasswordProtected: fDomain.IsPasswordProtected,
		ExpiresAt:           fDomain.ExpiresAt,
		SharedWith:          fDomain.SharedWith,
		UploadedAt:          fDomain.CreatedAt,
	}

	return f
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
