package user

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTotalStorage is the per-user quota assigned at signup: 1 GiB.
const DefaultTotalStorage uint64 = 1 << 30

type (
	ID   uint64
	UUID = uuid.UUID
	User struct {
		UUID         UUID
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
