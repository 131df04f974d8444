package ports

import (
	"context"

	"github.com/google/uuid"

	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/tier"
)

type FileService interface {
	RequestUploadSlot(ctx context.Context, req file.UploadRequest) (*file.UploadSlot, error)
	ConfirmUpload(ctx context.Context, id uuid.UUID, email *string, userID *uuid.UUID) (*file.File, error)
	GetFileDetails(ctx context.Context, id uuid.UUID) (*file.File, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	ApplyUpgrade(ctx context.Context, id uuid.UUID, patch file.Patch) (*file.File, error)
	TierGrant(ctx context.Context, id uuid.UUID, t *tier.Tier, paymentID uuid.UUID) (*file.File, error)
	ListByUser(ctx context.Context, userID uuid.UUID) (file.Files, error)
	ClearAll(ctx context.Context) (*file.ClearResult, error)
	SweepExpired(ctx context.Context) (int, error)
}
