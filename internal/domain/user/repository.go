package user

import (
	"context"
	"errors"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

// Repository returns (nil, nil) for lookups that match nothing.
type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateProfile(ctx context.Context, uuid UUID, name, email string) (*User, error)
	UpdatePassword(ctx context.Context, uuid UUID, passwordHash string) error
}
