package file

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"file-share-api/internal/domain/file"
	"file-share-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) file.Repository {
	return &Repository{db: db}
}

func scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.UUID,
		&f.UserID,

		&f.StorageKey,
		&f.OriginalName,
		&f.MimeType,
		&f.SizeBytes,
		&f.Email,
		&f.DownloadURL,
		&f.Status,

		&f.MaxSizeGB,
		&f.ValidityHours,
		&f.IsPremium,
		&f.PaymentID,

		&f.UploadedAt,
		&f.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (r *Repository) FetchFile(ctx context.Context, id uuid.UUID) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchUserFiles(ctx context.Context, userID uuid.UUID) (file.Files, error) {
	return r.queryFiles(ctx, SelectUserFiles, userID)
}

func (r *Repository) queryFiles(ctx context.Context, sql string, args ...any) (file.Files, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(fs), nil
}

func (r *Repository) CreateFile(ctx context.Context, req *file.File) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(
		ctx,
		InsertFile,
		req.UserID, req.StorageKey, req.OriginalName, req.MimeType, req.SizeBytes, string(req.Status),
		req.MaxSizeGB, req.ValidityHours, req.IsPremium, req.UploadedAt, req.ExpiresAt,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) RefreshDownloadURL(ctx context.Context, id uuid.UUID, url string) (*file.File, error) {
	return r.updateRow(ctx, UpdateDownloadURL, url, id)
}

func (r *Repository) ConfirmFile(ctx context.Context, req *file.File) (*file.File, error) {
	return r.updateRow(ctx, ConfirmFileByID, req.UserID, req.Email, req.DownloadURL, string(req.Status), req.UUID)
}

func (r *Repository) UpdateEntitlement(ctx context.Context, req *file.File) (*file.File, error) {
	return r.updateRow(
		ctx,
		UpdateEntitlementByID,
		req.MaxSizeGB, req.ValidityHours, req.IsPremium, req.PaymentID, req.ExpiresAt, req.DownloadURL,
		req.UUID,
	)
}

func (r *Repository) updateRow(ctx context.Context, sql string, args ...any) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (file.Files, error) {
	return r.queryFiles(ctx, DeleteExpiredFiles, now)
}

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, DeleteAllFiles)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
