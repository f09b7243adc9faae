package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	User struct {
		ID           uint64
		UUID         uuid.UUID
		Email        string
		PasswordHash *string
		Name         string

		TotalStorage uint64
		UsedStorage  uint64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
