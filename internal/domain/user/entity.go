package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Name         string
		Email        string
		PasswordHash string
		IsAdmin      bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	// Identity is what an authenticated request carries downstream.
	Identity struct {
		UserID  UUID
		Email   string
		IsAdmin bool
	}
)

// Session is an authenticated user with a freshly issued bearer token.
type Session struct {
	User  *User
	Token string
}
