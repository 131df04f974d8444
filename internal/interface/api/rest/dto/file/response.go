package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	UploadURLResponse struct {
		UploadURL string    `json:"uploadUrl"`
		FileID    uuid.UUID `json:"fileId"`
		ExpiresAt time.Time `json:"expiresAt"`
	}

	ConfirmResponse struct {
		FileID      uuid.UUID `json:"fileId"`
		DownloadURL string    `json:"downloadUrl"`
		ExpiresAt   time.Time `json:"expiresAt"`
	}

	DetailsResponse struct {
		FileID        uuid.UUID `json:"fileId"`
		FileName      string    `json:"fileName"`
		FileSize      int64     `json:"fileSize"`
		DownloadURL   string    `json:"downloadUrl"`
		ExpiresAt     time.Time `json:"expiresAt"`
		IsPremium     bool      `json:"isPremium"`
		ValidityHours int       `json:"validityHours"`
		UploadedAt    time.Time `json:"uploadedAt"`
	}

	UpgradeResponse struct {
		FileID        uuid.UUID `json:"fileId"`
		FileName      string    `json:"fileName"`
		FileSize      int64     `json:"fileSize"`
		MaxSize       int       `json:"maxSize"`
		ValidityHours int       `json:"validityHours"`
		ExpiresAt     time.Time `json:"expiresAt"`
		DownloadURL   string    `json:"downloadUrl"`
		IsPremium     bool      `json:"isPremium"`
	}

	Upload struct {
		FileID        uuid.UUID `json:"fileId"`
		FileName      string    `json:"fileName"`
		FileSize      int64     `json:"fileSize"`
		MimeType      string    `json:"mimeType"`
		Status        string    `json:"status"`
		DownloadURL   string    `json:"downloadUrl,omitempty"`
		MaxSize       int       `json:"maxSize"`
		ValidityHours int       `json:"validityHours"`
		IsPremium     bool      `json:"isPremium"`
		UploadedAt    time.Time `json:"uploadedAt"`
		ExpiresAt     time.Time `json:"expiresAt"`
	}
	Uploads      []Upload
	ResponseData struct {
		Data Uploads `json:"data"`
	}

	ClearResponse struct {
		Message        string `json:"message"`
		Deleted        int    `json:"deleted"`
		Errors         int    `json:"errors"`
		RecordsDeleted int64  `json:"recordsDeleted"`
	}
)
