package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-share-api/config"
	"file-share-api/internal/domain/apperr"
	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/notification"
	"file-share-api/internal/domain/tier"
)

var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	filesConf = config.Files{
		DefaultSizeLimitGB:   2,
		DefaultValidityHours: 4,
		UploadURLTTL:         time.Hour,
	}
	keyRe = regexp.MustCompile(`^uploads/[0-9a-f]{32}-[a-z0-9\-_]+(\.[a-z0-9]+)?$`)
)

type fileFixture struct {
	svc      *FileService
	repo     *memFileRepo
	tiers    *memTierRepo
	storage  *FakeStorage
	notifier *recordingNotifier
}

func newFileFixture(t *testing.T, fls ...*file.File) *fileFixture {
	t.Helper()

	fx := &fileFixture{
		repo:     newMemFileRepo(fls...),
		tiers:    &memTierRepo{},
		storage:  &FakeStorage{},
		notifier: &recordingNotifier{},
	}
	svc := NewFileService(fx.repo, NewTierService(fx.tiers), fx.storage, fx.notifier, newTestCounter(), filesConf).(*FileService)
	svc.now = fixedClock(testNow)
	fx.svc = svc

	return fx
}

func storedFile(uploadedAt time.Time, validity int) *file.File {
	return &file.File{
		UUID:          uuid.New(),
		StorageKey:    "uploads/0123456789abcdef0123456789abcdef-report.pdf",
		OriginalName:  "report.pdf",
		MimeType:      "application/pdf",
		SizeBytes:     1 << 20,
		Status:        file.StatusConfirmed,
		MaxSizeGB:     2,
		ValidityHours: validity,
		UploadedAt:    uploadedAt,
		ExpiresAt:     file.ExpiresFrom(uploadedAt, validity),
	}
}

func TestRequestUploadSlot_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  file.UploadRequest
		msg  string
	}{
		{"missing name", file.UploadRequest{MimeType: "text/plain", FileSize: 10}, "Filename and file type are required"},
		{"missing type", file.UploadRequest{FileName: "a.txt", FileSize: 10}, "Filename and file type are required"},
		{"zero size", file.UploadRequest{FileName: "a.txt", MimeType: "text/plain"}, "Valid file size is required"},
		{"negative size", file.UploadRequest{FileName: "a.txt", MimeType: "text/plain", FileSize: -1}, "Valid file size is required"},
		{"bad type", file.UploadRequest{FileName: "a.txt", MimeType: "text/", FileSize: 1}, "Invalid file type"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fx := newFileFixture(t)

			_, err := fx.svc.RequestUploadSlot(context.Background(), tt.req)

			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tt.msg, apperr.Message(err))
			assert.Zero(t, fx.repo.len())
		})
	}
}

func TestRequestUploadSlot_OversizeCreatesNoRecord(t *testing.T) {
	fx := newFileFixture(t)
	putCalled := false
	fx.storage.PresignPutFunc = func(context.Context, string, string, time.Duration) (string, error) {
		putCalled = true
		return "", nil
	}

	_, err := fx.svc.RequestUploadSlot(context.Background(), file.UploadRequest{
		FileName: "big.iso",
		MimeType: "application/octet-stream",
		FileSize: 3 * (1 << 30),
	})

	var sl *apperr.SizeLimitError
	require.ErrorAs(t, err, &sl)
	assert.Equal(t, 2, sl.LimitGB)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.False(t, putCalled)
	assert.Zero(t, fx.repo.len())
}

func TestRequestUploadSlot_ExactlyAtLimitAccepted(t *testing.T) {
	fx := newFileFixture(t)

	slot, err := fx.svc.RequestUploadSlot(context.Background(), file.UploadRequest{
		FileName: "edge.bin",
		MimeType: "application/octet-stream",
		FileSize: 2 * (1 << 30),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fx.repo.len())
	assert.Equal(t, int64(2*(1<<30)), slot.File.SizeBytes)
}

func TestRequestUploadSlot_UsesDefaults(t *testing.T) {
	fx := newFileFixture(t)
	var gotTTL time.Duration
	var gotType string
	fx.storage.PresignPutFunc = func(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
		gotTTL, gotType = ttl, contentType
		return "https://s3.test/put?sig=1", nil
	}
	owner := uuid.New()

	slot, err := fx.svc.RequestUploadSlot(context.Background(), file.UploadRequest{
		FileName: "Quarterly Report.PDF",
		MimeType: "application/pdf",
		FileSize: 1024,
		UserID:   &owner,
	})
	require.NoError(t, err)

	f := slot.File
	assert.Equal(t, "https://s3.test/put?sig=1", slot.UploadURL)
	assert.Equal(t, time.Hour, gotTTL)
	assert.Equal(t, "application/pdf", gotType)
	assert.Regexp(t, keyRe, f.StorageKey)
	assert.Contains(t, f.StorageKey, "-quarterly-report.pdf")
	assert.Equal(t, "Quarterly Report.PDF", f.OriginalName)
	assert.Equal(t, file.StatusPending, f.Status)
	assert.Equal(t, 2, f.MaxSizeGB)
	assert.Equal(t, 4, f.ValidityHours)
	assert.False(t, f.IsPremium)
	assert.Equal(t, testNow, f.UploadedAt)
	assert.Equal(t, f.UploadedAt.Add(4*time.Hour), f.ExpiresAt)
	require.NotNil(t, f.UserID)
	assert.Equal(t, owner, *f.UserID)
}

func TestRequestUploadSlot_DefaultTierOverridesConfig(t *testing.T) {
	fx := newFileFixture(t)
	fx.tiers.tiers = tier.Tiers{
		{UUID: uuid.New(), Name: "Free Tier", FileSizeLimitGB: 1, ValidityInHours: 6, IsActive: true, IsDefault: true},
	}

	slot, err := fx.svc.RequestUploadSlot(context.Background(), file.UploadRequest{
		FileName: "a.txt", MimeType: "text/plain", FileSize: 512,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, slot.File.MaxSizeGB)
	assert.Equal(t, 6, slot.File.ValidityHours)
	assert.Equal(t, testNow.Add(6*time.Hour), slot.File.ExpiresAt)

	_, err = fx.svc.RequestUploadSlot(context.Background(), file.UploadRequest{
		FileName: "b.txt", MimeType: "text/plain", FileSize: 1<<30 + 1,
	})
	var sl *apperr.SizeLimitError
	require.ErrorAs(t, err, &sl)
	assert.Equal(t, 1, sl.LimitGB)
}

func TestRequestUploadSlot_PresignFailure(t *testing.T) {
	fx := newFileFixture(t)
	fx.storage.PresignPutFunc = func(context.Context, string, string, time.Duration) (string, error) {
		return "", errors.New("no credentials")
	}

	_, err := fx.svc.RequestUploadSlot(context.Background(), file.UploadRequest{
		FileName: "a.txt", MimeType: "text/plain", FileSize: 1,
	})

	require.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Zero(t, fx.repo.len())
}

func TestConfirmUpload(t *testing.T) {
	f := storedFile(testNow.Add(-time.Hour), 4)
	f.Status = file.StatusPending
	fx := newFileFixture(t, f)
	var gotTTL time.Duration
	fx.storage.PresignGetFunc = func(_ context.Context, key, name string, ttl time.Duration) (string, error) {
		gotTTL = ttl
		return "https://s3.test/get/" + name, nil
	}
	email := "friend@example.com"
	owner := uuid.New()

	out, err := fx.svc.ConfirmUpload(context.Background(), f.UUID, &email, &owner)
	require.NoError(t, err)

	assert.Equal(t, 4*time.Hour, gotTTL)
	assert.Equal(t, "https://s3.test/get/report.pdf", out.DownloadURL)
	assert.Equal(t, file.StatusConfirmed, out.Status)
	assert.Equal(t, f.ExpiresAt, out.ExpiresAt)

	stored := fx.repo.get(f.UUID)
	require.NotNil(t, stored.Email)
	assert.Equal(t, email, *stored.Email)
	assert.Equal(t, owner, *stored.UserID)

	events := fx.notifier.published()
	require.Len(t, events, 1)
	assert.Equal(t, notification.KindFileShared, events[0].Kind)
	assert.Equal(t, email, events[0].To)
	assert.Equal(t, "report.pdf", events[0].FileName)
	assert.Equal(t, out.DownloadURL, events[0].DownloadURL)
}

func TestConfirmUpload_NoEmailNoNotification(t *testing.T) {
	f := storedFile(testNow, 4)
	fx := newFileFixture(t, f)

	_, err := fx.svc.ConfirmUpload(context.Background(), f.UUID, nil, nil)

	require.NoError(t, err)
	assert.Empty(t, fx.notifier.published())
	assert.Nil(t, fx.repo.get(f.UUID).Email)
}

func TestConfirmUpload_NotFound(t *testing.T) {
	fx := newFileFixture(t)

	_, err := fx.svc.ConfirmUpload(context.Background(), uuid.New(), nil, nil)

	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "File not found", apperr.Message(err))
}

func TestGetFileDetails(t *testing.T) {
	live := storedFile(testNow.Add(-time.Hour), 4)
	expired := storedFile(testNow.Add(-5*time.Hour), 4)
	fx := newFileFixture(t, live, expired)

	out, err := fx.svc.GetFileDetails(context.Background(), live.UUID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.test/get/"+live.StorageKey, out.DownloadURL)
	assert.Equal(t, out.DownloadURL, fx.repo.get(live.UUID).DownloadURL)

	_, err = fx.svc.GetFileDetails(context.Background(), expired.UUID)
	require.ErrorIs(t, err, apperr.ErrGone)
	assert.Equal(t, "This file has expired", apperr.Message(err))

	_, err = fx.svc.GetFileDetails(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDownloadURL(t *testing.T) {
	live := storedFile(testNow, 4)
	expired := storedFile(testNow.Add(-48*time.Hour), 24)
	fx := newFileFixture(t, live, expired)

	url, err := fx.svc.DownloadURL(context.Background(), live.UUID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.test/get/"+live.StorageKey, url)

	_, err = fx.svc.DownloadURL(context.Background(), expired.UUID)
	require.ErrorIs(t, err, apperr.ErrGone)
}

func TestApplyUpgrade_AnchorsToUploadTime(t *testing.T) {
	uploadedAt := testNow.Add(-3 * time.Hour)
	f := storedFile(uploadedAt, 4)
	fx := newFileFixture(t, f)
	var gotTTL time.Duration
	fx.storage.PresignGetFunc = func(_ context.Context, key, _ string, ttl time.Duration) (string, error) {
		gotTTL = ttl
		return "https://s3.test/fresh", nil
	}

	out, err := fx.svc.ApplyUpgrade(context.Background(), f.UUID, file.Patch{
		MaxSizeGB:     file.Some(5),
		ValidityHours: file.Some(24),
		IsPremium:     file.Some(true),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, out.MaxSizeGB)
	assert.Equal(t, 24, out.ValidityHours)
	assert.True(t, out.IsPremium)
	assert.Equal(t, uploadedAt.Add(24*time.Hour), out.ExpiresAt)
	assert.Equal(t, 24*time.Hour, gotTTL)
	assert.Equal(t, "https://s3.test/fresh", out.DownloadURL)
}

func TestApplyUpgrade_PartialAndNull(t *testing.T) {
	f := storedFile(testNow, 4)
	pid := uuid.New()
	f.PaymentID = &pid
	fx := newFileFixture(t, f)

	out, err := fx.svc.ApplyUpgrade(context.Background(), f.UUID, file.Patch{
		MaxSizeGB: file.Optional[int]{Set: true, Null: true},
		PaymentID: file.Optional[uuid.UUID]{Set: true, Null: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.MaxSizeGB, "null does not overwrite a required field")
	assert.Equal(t, 4, out.ValidityHours)
	assert.Equal(t, f.ExpiresAt, out.ExpiresAt)
	assert.Nil(t, out.PaymentID, "null clears the payment link")

	next := uuid.New()
	out, err = fx.svc.ApplyUpgrade(context.Background(), f.UUID, file.Patch{PaymentID: file.Some(next)})
	require.NoError(t, err)
	require.NotNil(t, out.PaymentID)
	assert.Equal(t, next, *out.PaymentID)
}

func TestApplyUpgrade_Errors(t *testing.T) {
	f := storedFile(testNow, 4)

	tests := []struct {
		name  string
		id    uuid.UUID
		patch file.Patch
		kind  error
	}{
		{"zero validity", f.UUID, file.Patch{ValidityHours: file.Some(0)}, apperr.ErrValidation},
		{"negative size", f.UUID, file.Patch{MaxSizeGB: file.Some(-1)}, apperr.ErrValidation},
		{"missing", uuid.New(), file.Patch{IsPremium: file.Some(true)}, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fx := newFileFixture(t, f)

			_, err := fx.svc.ApplyUpgrade(context.Background(), tt.id, tt.patch)

			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestTierGrant_AnchorsToCompletion(t *testing.T) {
	f := storedFile(testNow.Add(-3*time.Hour), 4)
	fx := newFileFixture(t, f)
	premium := &tier.Tier{UUID: uuid.New(), Name: "Premium Tier", FileSizeLimitGB: 10, ValidityInHours: 72, Price: 80}
	pid := uuid.New()

	out, err := fx.svc.TierGrant(context.Background(), f.UUID, premium, pid)
	require.NoError(t, err)

	assert.Equal(t, 10, out.MaxSizeGB)
	assert.Equal(t, 72, out.ValidityHours)
	assert.True(t, out.IsPremium)
	assert.Equal(t, pid, *out.PaymentID)
	assert.Equal(t, testNow.Add(72*time.Hour), out.ExpiresAt)
	assert.Equal(t, "https://s3.test/get/"+f.StorageKey, out.DownloadURL)
	assert.False(t, fx.repo.get(f.UUID).IsPremium, "the grant is written by the payment settlement")
}

func TestGetFileDetails_KeepsConcurrentEntitlement(t *testing.T) {
	f := storedFile(testNow.Add(-time.Hour), 4)
	fx := newFileFixture(t, f)
	pid := uuid.New()
	paid := *f
	paid.MaxSizeGB, paid.ValidityHours, paid.IsPremium, paid.PaymentID = 10, 72, true, &pid
	paid.ExpiresAt = testNow.Add(72 * time.Hour)
	fx.storage.PresignGetFunc = func(_ context.Context, key, _ string, _ time.Duration) (string, error) {
		_, err := fx.repo.UpdateEntitlement(context.Background(), &paid)
		require.NoError(t, err)
		return "https://s3.test/get/" + key, nil
	}

	out, err := fx.svc.GetFileDetails(context.Background(), f.UUID)
	require.NoError(t, err)

	stored := fx.repo.get(f.UUID)
	assert.True(t, stored.IsPremium)
	assert.Equal(t, 72, stored.ValidityHours)
	require.NotNil(t, stored.PaymentID)
	assert.Equal(t, pid, *stored.PaymentID)
	assert.Equal(t, paid.ExpiresAt, stored.ExpiresAt)
	assert.True(t, out.IsPremium)
	assert.Equal(t, "https://s3.test/get/"+f.StorageKey, stored.DownloadURL)
}

func TestConfirmUpload_KeepsConcurrentEntitlement(t *testing.T) {
	f := storedFile(testNow, 4)
	f.Status = file.StatusPending
	fx := newFileFixture(t, f)
	pid := uuid.New()
	paid := *f
	paid.IsPremium, paid.PaymentID, paid.ValidityHours = true, &pid, 72
	fx.storage.PresignGetFunc = func(_ context.Context, key, _ string, _ time.Duration) (string, error) {
		_, err := fx.repo.UpdateEntitlement(context.Background(), &paid)
		require.NoError(t, err)
		return "https://s3.test/get/" + key, nil
	}

	out, err := fx.svc.ConfirmUpload(context.Background(), f.UUID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, file.StatusConfirmed, out.Status)
	assert.True(t, out.IsPremium)
	assert.Equal(t, 72, fx.repo.get(f.UUID).ValidityHours)
}

func TestFileRemovedDuringUpdate(t *testing.T) {
	email := "friend@example.com"

	tests := []struct {
		name string
		call func(fx *fileFixture, id uuid.UUID) (*file.File, error)
	}{
		{
			name: "details",
			call: func(fx *fileFixture, id uuid.UUID) (*file.File, error) {
				return fx.svc.GetFileDetails(context.Background(), id)
			},
		},
		{
			name: "confirm",
			call: func(fx *fileFixture, id uuid.UUID) (*file.File, error) {
				return fx.svc.ConfirmUpload(context.Background(), id, &email, nil)
			},
		},
		{
			name: "upgrade",
			call: func(fx *fileFixture, id uuid.UUID) (*file.File, error) {
				return fx.svc.ApplyUpgrade(context.Background(), id, file.Patch{IsPremium: file.Some(true)})
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := storedFile(testNow, 4)
			fx := newFileFixture(t, f)
			fx.storage.PresignGetFunc = func(_ context.Context, key, _ string, _ time.Duration) (string, error) {
				fx.repo.remove(f.UUID)
				return "https://s3.test/get/" + key, nil
			}

			var (
				out *file.File
				err error
			)
			require.NotPanics(t, func() { out, err = tt.call(fx, f.UUID) })

			require.ErrorIs(t, err, apperr.ErrNotFound)
			assert.Equal(t, "File not found", apperr.Message(err))
			assert.Nil(t, out)
			assert.Empty(t, fx.notifier.published())
		})
	}
}

func TestListByUser(t *testing.T) {
	owner := uuid.New()
	older := storedFile(testNow.Add(-2*time.Hour), 4)
	older.UserID = &owner
	newer := storedFile(testNow.Add(-time.Hour), 4)
	newer.UserID = &owner
	fx := newFileFixture(t, older, newer, storedFile(testNow, 4))

	fls, err := fx.svc.ListByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, fls, 2)
	assert.Equal(t, newer.UUID, fls[0].UUID)

	_, err = fx.svc.ListByUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestClearAll(t *testing.T) {
	tests := []struct {
		name        string
		res         file.PurgeResult
		wantRecords int64
		wantLeft    int
	}{
		{"objects deleted", file.PurgeResult{Deleted: 3, Errors: 1}, 2, 0},
		{"empty bucket keeps records", file.PurgeResult{}, 0, 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fx := newFileFixture(t, storedFile(testNow, 4), storedFile(testNow, 4))
			fx.storage.ClearBucketFunc = func(context.Context) (file.PurgeResult, error) { return tt.res, nil }

			out, err := fx.svc.ClearAll(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.res.Deleted, out.ObjectsDeleted)
			assert.Equal(t, tt.res.Errors, out.Errors)
			assert.Equal(t, tt.wantRecords, out.RecordsDeleted)
			assert.Equal(t, tt.wantLeft, fx.repo.len())
		})
	}
}

func TestClearAll_StorageFailure(t *testing.T) {
	fx := newFileFixture(t, storedFile(testNow, 4))
	fx.storage.ClearBucketFunc = func(context.Context) (file.PurgeResult, error) {
		return file.PurgeResult{}, errors.New("access denied")
	}

	_, err := fx.svc.ClearAll(context.Background())

	require.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Equal(t, 1, fx.repo.len())
}

func TestSweepExpired(t *testing.T) {
	email := "owner@example.com"
	expiredWithEmail := storedFile(testNow.Add(-10*time.Hour), 4)
	expiredWithEmail.Email = &email
	expiredSilent := storedFile(testNow.Add(-5*time.Hour), 4)
	live := storedFile(testNow.Add(-time.Hour), 4)
	fx := newFileFixture(t, expiredWithEmail, expiredSilent, live)

	n, err := fx.svc.SweepExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, 1, fx.repo.len())
	assert.NotNil(t, fx.repo.get(live.UUID))

	events := fx.notifier.published()
	require.Len(t, events, 1)
	assert.Equal(t, notification.KindFileExpired, events[0].Kind)
	assert.Equal(t, email, events[0].To)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in, mediaType, want string
	}{
		{"Quarterly Report.PDF", "application/pdf", "quarterly-report.pdf"},
		{"../../etc/passwd", "text/plain", "passwd.txt"},
		{`C:\Users\me\Résumé final.docx`, "", "resume-final.docx"},
		{"con.txt", "text/plain", "_con.txt"},
		{"...", "application/pdf", "file.pdf"},
		{"notes", "text/plain", "notes.txt"},
		{"archive", "application/x-unknown-thing", "archive"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in, tt.mediaType))
		})
	}
}

func TestStorageKey_Unique(t *testing.T) {
	a, err := storageKey("a.txt", "text/plain")
	require.NoError(t, err)
	b, err := storageKey("a.txt", "text/plain")
	require.NoError(t, err)

	assert.Regexp(t, keyRe, a)
	assert.NotEqual(t, a, b)
}
