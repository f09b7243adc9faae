package file

import (
	domain "file-share-api/internal/domain/file"
	"file-share-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		UUID:      model.UUID,
		OwnerID:   user.ID(model.UserID),
		OwnerUUID: model.OwnerUUID,

		FileName:  model.FileName,
		MimeType:  model.MimeType,
		SizeBytes: model.SizeBytes,

		Bucket:     model.Bucket,
		StorageKey: model.StorageKey,
		URL:        model.URL,
		SecureURL:  model.SecureURL,

		IsPublic:            model.IsPublic,
		IsPasswordProtected: model.IsPasswordProtected,
		PasswordHash:        model.PasswordHash,
		ExpiresAt:           model.ExpiresAt,
		SharedWith:          model.SharedWith,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
