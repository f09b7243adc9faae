package user

import (
	"file-share-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		UUID:         uDomain.UUID,
		Email:        uDomain.Email,
		Name:         uDomain.Name,
		TotalStorage: uDomain.TotalStorage,
		UsedStorage:  uDomain.UsedStorage,
		CreatedAt:    uDomain.CreatedAt,
	}

	return u
}
