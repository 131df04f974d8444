package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID         uuid.UUID
		Name         string
		Email        string
		PasswordHash string
		IsAdmin      bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
