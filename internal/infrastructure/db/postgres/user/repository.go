package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"file-share-api/internal/domain/user"
	"file-share-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := new(User)
	err := row.Scan(
		&u.UUID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, SelectUserByID, uuid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, SelectUserByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, InsertUser, req.Name, req.Email, req.PasswordHash))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, uuid user.UUID, name, email string) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, UpdateProfileByUUID, name, email, uuid))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, uuid user.UUID, passwordHash string) error {
	_, err := r.db.Exec(ctx, UpdatePasswordByUUID, passwordHash, uuid)
	return err
}
