package file

import (
	domain "file-share-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	return &domain.File{
		UUID:   model.UUID,
		UserID: model.UserID,

		StorageKey:   model.StorageKey,
		OriginalName: model.OriginalName,
		MimeType:     model.MimeType,
		SizeBytes:    model.SizeBytes,
		Email:        model.Email,
		DownloadURL:  model.DownloadURL,
		Status:       domain.Status(model.Status),

		MaxSizeGB:     model.MaxSizeGB,
		ValidityHours: model.ValidityHours,
		IsPremium:     model.IsPremium,
		PaymentID:     model.PaymentID,

		UploadedAt: model.UploadedAt,
		ExpiresAt:  model.ExpiresAt,
	}
}

func fromDBModels(models Files) domain.Files {
	fs := make(domain.Files, len(models))
	for idx, f := range models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
