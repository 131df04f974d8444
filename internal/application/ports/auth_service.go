package ports

import (
	"context"

	"file-share-api/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*user.Session, error)
	Login(ctx context.Context, email, password string) (*user.Session, error)
	Me(ctx context.Context, id user.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, id user.UUID, name, email *string) (*user.User, error)
	ChangePassword(ctx context.Context, id user.UUID, current, next string) error
}
