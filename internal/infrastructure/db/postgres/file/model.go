package file

import (
	"time"

	"github.com/google/uuid"
)

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
		Status       string

		MaxSizeGB     int
		ValidityHours int
		IsPremium     bool
		PaymentID     *uuid.UUID

		UploadedAt time.Time
		ExpiresAt  time.Time
	}
	Files []*File
)
