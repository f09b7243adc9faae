package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	UUID         uuid.UUID `json:"uuid"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	TotalStorage uint64    `json:"total_storage"`
	UsedStorage  uint64    `json:"used_storage"`
	CreatedAt    time.Time `json:"created_at"`
}
