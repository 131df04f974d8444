package file

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository returns (nil, nil) from FetchFile and from every update when no
// record matches, e.g. after the sweeper removed it.
type Repository interface {
	FetchFile(ctx context.Context, id uuid.UUID) (*File, error)
	FetchUserFiles(ctx context.Context, userID uuid.UUID) (Files, error)
	CreateFile(ctx context.Context, req *File) (*File, error)
	// RefreshDownloadURL writes only download_url.
	RefreshDownloadURL(ctx context.Context, id uuid.UUID, url string) (*File, error)
	// ConfirmFile writes the owner, recipient email, download URL and status.
	ConfirmFile(ctx context.Context, req *File) (*File, error)
	// UpdateEntitlement writes the size limit, validity, premium flag, payment
	// link, expiry and download URL.
	UpdateEntitlement(ctx context.Context, req *File) (*File, error)
	// DeleteExpired removes records whose expiry is before now and returns them.
	DeleteExpired(ctx context.Context, now time.Time) (Files, error)
	DeleteAll(ctx context.Context) (int64, error)
}
