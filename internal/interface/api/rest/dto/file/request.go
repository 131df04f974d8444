package file

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"

	domain "file-share-api/internal/domain/file"
)

type (
	UploadURLRequest struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
		FileSize int64  `json:"fileSize"`
	}

	ConfirmRequest struct {
		Email *string `json:"email"`
	}

	// PatchRequest tells an omitted field apart from an explicit null.
	PatchRequest struct {
		MaxSize       Field[int]       `json:"maxSize"`
		ValidityHours Field[int]       `json:"validityHours"`
		IsPremium     Field[bool]      `json:"isPremium"`
		PaymentID     Field[uuid.UUID] `json:"paymentId"`
	}
)

// Field records whether a JSON member was present and whether it was null.
type Field[T any] domain.Optional[T]

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		return nil
	}

	return json.Unmarshal(b, &f.Value)
}

func (r PatchRequest) ToDomain() domain.Patch {
	return domain.Patch{
		MaxSizeGB:     domain.Optional[int](r.MaxSize),
		ValidityHours: domain.Optional[int](r.ValidityHours),
		IsPremium:     domain.Optional[bool](r.IsPremium),
		PaymentID:     domain.Optional[uuid.UUID](r.PaymentID),
	}
}
