package ports

import (
	"context"
	"time"

	"file-share-api/internal/domain/file"
)

type ObjectStorage interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, key, originalName string, ttl time.Duration) (string, error)
	ClearBucket(ctx context.Context) (file.PurgeResult, error)
}
