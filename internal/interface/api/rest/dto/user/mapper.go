package user

import (
	"file-share-api/internal/domain/user"
)

func ToResponseUser(u user.User) User {
	return User{
		ID:        u.UUID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
