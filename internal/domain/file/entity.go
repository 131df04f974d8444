package file

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

const bytesPerGB = 1 << 30

type (
	File struct {
		UUID   uuid.UUID
		UserID *uuid.UUID

		StorageKey   string
		OriginalName string
		MimeType     string
		SizeBytes    int64
		Email        *string
		DownloadURL  string
		Status       Status

		MaxSizeGB     int
		ValidityHours int
		IsPremium     bool
		PaymentID     *uuid.UUID

		UploadedAt time.Time
		ExpiresAt  time.Time
	}
	Files []*File

	// Optional is a patch field with an explicit presence flag. Null is only
	// meaningful when Set is true.
	Optional[T any] struct {
		Value T
		Set   bool
		Null  bool
	}

	// Patch is a partial manual update of a file's entitlement.
	Patch struct {
		MaxSizeGB     Optional[int]
		ValidityHours Optional[int]
		IsPremium     Optional[bool]
		PaymentID     Optional[uuid.UUID]
	}
)

// Has reports whether the field was supplied with a non-null value.
func (o Optional[T]) Has() bool { return o.Set && !o.Null }

func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Set: true} }

// ExpiresFrom computes the logical expiry for a validity window starting at from.
func ExpiresFrom(from time.Time, validityHours int) time.Time {
	return from.Add(time.Duration(validityHours) * time.Hour)
}

// SizeGB converts a byte count to (fractional) gigabytes.
func SizeGB(sizeBytes int64) float64 { return float64(sizeBytes) / bytesPerGB }

func (f *File) Expired(now time.Time) bool { return f.ExpiresAt.Before(now) }

// ReadURLTTL is how long a presigned download URL issued for f should live.
func (f *File) ReadURLTTL() time.Duration { return time.Duration(f.ValidityHours) * time.Hour }

type (
	UploadRequest struct {
		FileName string
		MimeType string
		FileSize int64
		UserID   *uuid.UUID
	}

	UploadSlot struct {
		UploadURL string
		File      *File
	}

	// PurgeResult counts the objects removed from storage by a bucket purge.
	PurgeResult struct {
		Deleted int
		Errors  int
	}

	ClearResult struct {
		ObjectsDeleted int
		Errors         int
		RecordsDeleted int64
	}
)
