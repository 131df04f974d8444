package services

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"file-share-api/config"
	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/apperr"
	domain "file-share-api/internal/domain/file"
	"file-share-api/internal/domain/notification"
	"file-share-api/internal/domain/tier"
)

const (
	msgFileNotFound = "File not found"
	msgFileExpired  = "This file has expired"
)

type FileService struct {
	fileRepository domain.Repository
	tierService    ports.TierService
	storage        ports.ObjectStorage
	notifier       ports.Notifier
	mCounter       *prometheus.CounterVec
	cfg            config.Files
	now            func() time.Time
}

func NewFileService(
	fileRepository domain.Repository,
	tierService ports.TierService,
	storage ports.ObjectStorage,
	notifier ports.Notifier,
	mCounter *prometheus.CounterVec,
	cfg config.Files,
) ports.FileService {
	return &FileService{
		fileRepository: fileRepository,
		tierService:    tierService,
		storage:        storage,
		notifier:       notifier,
		mCounter:       mCounter,
		cfg:            cfg,
		now:            time.Now,
	}
}

func (fs *FileService) RequestUploadSlot(ctx context.Context, req domain.UploadRequest) (*domain.UploadSlot, error) {
	name := strings.TrimSpace(req.FileName)
	if name == "" || strings.TrimSpace(req.MimeType) == "" {
		return nil, apperr.Validation("Filename and file type are required")
	}
	if req.FileSize <= 0 {
		return nil, apperr.Validation("Valid file size is required")
	}
	mediaType, _, err := mime.ParseMediaType(req.MimeType)
	if err != nil {
		return nil, apperr.Validation("Invalid file type")
	}

	limitGB, validity, err := fs.freeLimits(ctx)
	if err != nil {
		return nil, err
	}
	if domain.SizeGB(req.FileSize) > float64(limitGB) {
		fs.mCounter.WithLabelValues("uploads_rejected_total").Inc()
		return nil, &apperr.SizeLimitError{LimitGB: limitGB}
	}

	key, err := storageKey(name, mediaType)
	if err != nil {
		return nil, err
	}
	uploadURL, err := fs.storage.PresignPut(ctx, key, mediaType, fs.cfg.UploadURLTTL)
	if err != nil {
		return nil, apperr.Upstream("presign upload", err)
	}

	now := fs.now().UTC()
	f, err := fs.fileRepository.CreateFile(ctx, &domain.File{
		UserID:        req.UserID,
		StorageKey:    key,
		OriginalName:  name,
		MimeType:      mediaType,
		SizeBytes:     req.FileSize,
		Status:        domain.StatusPending,
		MaxSizeGB:     limitGB,
		ValidityHours: validity,
		UploadedAt:    now,
		ExpiresAt:     domain.ExpiresFrom(now, validity),
	})
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	fs.mCounter.WithLabelValues("uploads_requested_total").Inc()

	return &domain.UploadSlot{UploadURL: uploadURL, File: f}, nil
}

// freeLimits resolves the limits for an unpaid upload: the default tier when
// one is configured, otherwise the environment defaults.
func (fs *FileService) freeLimits(ctx context.Context) (int, int, error) {
	t, err := fs.tierService.DefaultTier(ctx)
	if err != nil {
		return 0, 0, err
	}
	if t != nil {
		return t.FileSizeLimitGB, t.ValidityInHours, nil
	}

	return fs.cfg.DefaultSizeLimitGB, fs.cfg.DefaultValidityHours, nil
}

func (fs *FileService) ConfirmUpload(
	ctx context.Context,
	id uuid.UUID,
	email *string,
	userID *uuid.UUID,
) (*domain.File, error) {
	f, err := fs.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = fs.refreshURL(ctx, f); err != nil {
		return nil, err
	}
	if email != nil && *email != "" {
		f.Email = email
	}
	if userID != nil {
		f.UserID = userID
	}
	f.Status = domain.StatusConfirmed

	out, err := fs.fileRepository.ConfirmFile(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("confirm file: %w", err)
	}
	if out == nil {
		return nil, apperr.NotFound(msgFileNotFound)
	}

	fs.mCounter.WithLabelValues("uploads_confirmed_total").Inc()

	if email != nil && *email != "" {
		e := notification.New(notification.KindFileShared, *email, fs.now())
		e.FileName = out.OriginalName
		e.DownloadURL = out.DownloadURL
		e.ExpiresAt = out.ExpiresAt
		_ = fs.notifier.Publish(e)
	}

	return out, nil
}

func (fs *FileService) GetFileDetails(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	f, err := fs.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Expired(fs.now()) {
		return nil, apperr.New(apperr.ErrGone, msgFileExpired)
	}

	if err = fs.refreshURL(ctx, f); err != nil {
		return nil, err
	}

	out, err := fs.fileRepository.RefreshDownloadURL(ctx, f.UUID, f.DownloadURL)
	if err != nil {
		return nil, fmt.Errorf("refresh download url: %w", err)
	}
	if out == nil {
		return nil, apperr.NotFound(msgFileNotFound)
	}

	return out, nil
}

func (fs *FileService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	f, err := fs.GetFileDetails(ctx, id)
	if err != nil {
		return "", err
	}

	fs.mCounter.WithLabelValues("downloads_total").Inc()

	return f.DownloadURL, nil
}

func (fs *FileService) ApplyUpgrade(ctx context.Context, id uuid.UUID, patch domain.Patch) (*domain.File, error) {
	if patch.MaxSizeGB.Has() && patch.MaxSizeGB.Value <= 0 {
		return nil, apperr.Validation("maxSize must be a positive number")
	}
	if patch.ValidityHours.Has() && patch.ValidityHours.Value <= 0 {
		return nil, apperr.Validation("validityHours must be a positive number")
	}

	f, err := fs.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.MaxSizeGB.Has() {
		f.MaxSizeGB = patch.MaxSizeGB.Value
	}
	if patch.ValidityHours.Has() {
		f.ValidityHours = patch.ValidityHours.Value
		f.ExpiresAt = domain.ExpiresFrom(f.UploadedAt, f.ValidityHours)
	}
	if patch.IsPremium.Has() {
		f.IsPremium = patch.IsPremium.Value
	}
	if patch.PaymentID.Set {
		if patch.PaymentID.Null {
			f.PaymentID = nil
		} else {
			pid := patch.PaymentID.Value
			f.PaymentID = &pid
		}
	}

	if err = fs.refreshURL(ctx, f); err != nil {
		return nil, err
	}

	out, err := fs.fileRepository.UpdateEntitlement(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("upgrade file: %w", err)
	}
	if out == nil {
		return nil, apperr.NotFound(msgFileNotFound)
	}

	fs.mCounter.WithLabelValues("files_upgraded_total").Inc()

	return out, nil
}

// TierGrant returns the file as it looks with a purchased tier applied. The
// validity window restarts now. Nothing is persisted.
func (fs *FileService) TierGrant(
	ctx context.Context,
	id uuid.UUID,
	t *tier.Tier,
	paymentID uuid.UUID,
) (*domain.File, error) {
	f, err := fs.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	f.MaxSizeGB = t.FileSizeLimitGB
	f.ValidityHours = t.ValidityInHours
	f.IsPremium = true
	f.PaymentID = &paymentID
	f.ExpiresAt = domain.ExpiresFrom(fs.now().UTC(), t.ValidityInHours)

	if err = fs.refreshURL(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (fs *FileService) ListByUser(ctx context.Context, userID uuid.UUID) (domain.Files, error) {
	fls, err := fs.fileRepository.FetchUserFiles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user files: %w", err)
	}
	if len(fls) == 0 {
		return nil, apperr.NotFound("No files found")
	}

	return fls, nil
}

// ClearAll purges the bucket. Records are removed only when at least one
// object was deleted.
func (fs *FileService) ClearAll(ctx context.Context) (*domain.ClearResult, error) {
	res, err := fs.storage.ClearBucket(ctx)
	if err != nil {
		return nil, apperr.Upstream("clear bucket", err)
	}

	out := &domain.ClearResult{ObjectsDeleted: res.Deleted, Errors: res.Errors}
	if res.Deleted > 0 {
		n, err := fs.fileRepository.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("delete file records: %w", err)
		}
		out.RecordsDeleted = n
	}

	fs.mCounter.WithLabelValues("bucket_cleared_total").Inc()

	return out, nil
}

// SweepExpired deletes expired records and notifies their recipients.
// Stored objects are left in place.
func (fs *FileService) SweepExpired(ctx context.Context) (int, error) {
	now := fs.now()
	fls, err := fs.fileRepository.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired files: %w", err)
	}

	for _, f := range fls {
		if f.Email == nil || *f.Email == "" {
			continue
		}
		e := notification.New(notification.KindFileExpired, *f.Email, now)
		e.FileName = f.OriginalName
		e.ExpiresAt = f.ExpiresAt
		_ = fs.notifier.Publish(e)
	}

	fs.mCounter.WithLabelValues("files_expired_total").Add(float64(len(fls)))

	return len(fls), nil
}

func (fs *FileService) fetch(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	f, err := fs.fileRepository.FetchFile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	if f == nil {
		return nil, apperr.NotFound(msgFileNotFound)
	}

	return f, nil
}

func (fs *FileService) refreshURL(ctx context.Context, f *domain.File) error {
	url, err := fs.storage.PresignGet(ctx, f.StorageKey, f.OriginalName, f.ReadURLTTL())
	if err != nil {
		return apperr.Upstream("presign download", err)
	}
	f.DownloadURL = url

	return nil
}
