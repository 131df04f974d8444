package file

import (
	domain "file-share-api/internal/domain/file"
)

func ToUploadURLResponse(s domain.UploadSlot) UploadURLResponse {
	return UploadURLResponse{
		UploadURL: s.UploadURL,
		FileID:    s.File.UUID,
		ExpiresAt: s.File.ExpiresAt,
	}
}

func ToConfirmResponse(f domain.File) ConfirmResponse {
	return ConfirmResponse{FileID: f.UUID, DownloadURL: f.DownloadURL, ExpiresAt: f.ExpiresAt}
}

func ToDetailsResponse(f domain.File) DetailsResponse {
	return DetailsResponse{
		FileID:        f.UUID,
		FileName:      f.OriginalName,
		FileSize:      f.SizeBytes,
		DownloadURL:   f.DownloadURL,
		ExpiresAt:     f.ExpiresAt,
		IsPremium:     f.IsPremium,
		ValidityHours: f.ValidityHours,
		UploadedAt:    f.UploadedAt,
	}
}

func ToUpgradeResponse(f domain.File) UpgradeResponse {
	return UpgradeResponse{
		FileID:        f.UUID,
		FileName:      f.OriginalName,
		FileSize:      f.SizeBytes,
		MaxSize:       f.MaxSizeGB,
		ValidityHours: f.ValidityHours,
		ExpiresAt:     f.ExpiresAt,
		DownloadURL:   f.DownloadURL,
		IsPremium:     f.IsPremium,
	}
}

func ToUploads(fls domain.Files) Uploads {
	out := make(Uploads, len(fls))
	for idx, f := range fls {
		out[idx] = Upload{
			FileID:        f.UUID,
			FileName:      f.OriginalName,
			FileSize:      f.SizeBytes,
			MimeType:      f.MimeType,
			Status:        string(f.Status),
			DownloadURL:   f.DownloadURL,
			MaxSize:       f.MaxSizeGB,
			ValidityHours: f.ValidityHours,
			IsPremium:     f.IsPremium,
			UploadedAt:    f.UploadedAt,
			ExpiresAt:     f.ExpiresAt,
		}
	}

	return out
}

func ToClearResponse(r domain.ClearResult) ClearResponse {
	return ClearResponse{
		Message:        "Bucket cleared",
		Deleted:        r.ObjectsDeleted,
		Errors:         r.Errors,
		RecordsDeleted: r.RecordsDeleted,
	}
}
