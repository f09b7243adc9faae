package ports

import (
	"context"

	"file-share-api/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Register(ctx context.Context, email, name, password string) (*user.User, error)
}
