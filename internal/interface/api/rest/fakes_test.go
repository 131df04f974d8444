package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/payment"
	"file-share-api/internal/domain/tier"
	"file-share-api/internal/domain/user"
	jwtSvc "file-share-api/internal/infrastructure/jwt"
)

const testSecret = "test-secret"

var errNotUsed = errors.New("not used")

type FakeFileService struct {
	RequestUploadSlotFunc func(ctx context.Context, req file.UploadRequest) (*file.UploadSlot, error)
	ConfirmUploadFunc     func(ctx context.Context, id uuid.UUID, email *string, userID *uuid.UUID) (*file.File, error)
	GetFileDetailsFunc    func(ctx context.Context, id uuid.UUID) (*file.File, error)
	DownloadURLFunc       func(ctx context.Context, id uuid.UUID) (string, error)
	ApplyUpgradeFunc      func(ctx context.Context, id uuid.UUID, patch file.Patch) (*file.File, error)
	ListByUserFunc        func(ctx context.Context, userID uuid.UUID) (file.Files, error)
	ClearAllFunc          func(ctx context.Context) (*file.ClearResult, error)
}

func (f *FakeFileService) RequestUploadSlot(ctx context.Context, req file.UploadRequest) (*file.UploadSlot, error) {
	if f.RequestUploadSlotFunc == nil {
		return nil, errNotUsed
	}
	return f.RequestUploadSlotFunc(ctx, req)
}
func (f *FakeFileService) ConfirmUpload(ctx context.Context, id uuid.UUID, email *string, userID *uuid.UUID) (*file.File, error) {
	if f.ConfirmUploadFunc == nil {
		return nil, errNotUsed
	}
	return f.ConfirmUploadFunc(ctx, id, email, userID)
}
func (f *FakeFileService) GetFileDetails(ctx context.Context, id uuid.UUID) (*file.File, error) {
	if f.GetFileDetailsFunc == nil {
		return nil, errNotUsed
	}
	return f.GetFileDetailsFunc(ctx, id)
}
func (f *FakeFileService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	if f.DownloadURLFunc == nil {
		return "", errNotUsed
	}
	return f.DownloadURLFunc(ctx, id)
}
func (f *FakeFileService) ApplyUpgrade(ctx context.Context, id uuid.UUID, patch file.Patch) (*file.File, error) {
	if f.ApplyUpgradeFunc == nil {
		return nil, errNotUsed
	}
	return f.ApplyUpgradeFunc(ctx, id, patch)
}
func (f *FakeFileService) TierGrant(context.Context, uuid.UUID, *tier.Tier, uuid.UUID) (*file.File, error) {
	return nil, errNotUsed
}
func (f *FakeFileService) ListByUser(ctx context.Context, userID uuid.UUID) (file.Files, error) {
	if f.ListByUserFunc == nil {
		return nil, errNotUsed
	}
	return f.ListByUserFunc(ctx, userID)
}
func (f *FakeFileService) ClearAll(ctx context.Context) (*file.ClearResult, error) {
	if f.ClearAllFunc == nil {
		return nil, errNotUsed
	}
	return f.ClearAllFunc(ctx)
}
func (f *FakeFileService) SweepExpired(context.Context) (int, error) { return 0, errNotUsed }

type FakePaymentService struct {
	InitPaymentFunc         func(ctx context.Context, req payment.InitRequest) (*payment.Init, error)
	VerifyRazorpayFunc      func(ctx context.Context, req payment.RazorpayVerification) (*payment.Payment, error)
	HandleStripeWebhookFunc func(ctx context.Context, payload []byte, header string) error
	CheckStatusFunc         func(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
}

func (f *FakePaymentService) InitPayment(ctx context.Context, req payment.InitRequest) (*payment.Init, error) {
	if f.InitPaymentFunc == nil {
		return nil, errNotUsed
	}
	return f.InitPaymentFunc(ctx, req)
}
func (f *FakePaymentService) VerifyRazorpay(ctx context.Context, req payment.RazorpayVerification) (*payment.Payment, error) {
	if f.VerifyRazorpayFunc == nil {
		return nil, errNotUsed
	}
	return f.VerifyRazorpayFunc(ctx, req)
}
func (f *FakePaymentService) HandleStripeWebhook(ctx context.Context, payload []byte, header string) error {
	if f.HandleStripeWebhookFunc == nil {
		return errNotUsed
	}
	return f.HandleStripeWebhookFunc(ctx, payload, header)
}
func (f *FakePaymentService) CheckStatus(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	if f.CheckStatusFunc == nil {
		return nil, errNotUsed
	}
	return f.CheckStatusFunc(ctx, id)
}

type FakeTierService struct {
	ListPaidTiersFunc func(ctx context.Context) (tier.Tiers, error)
}

func (f *FakeTierService) ListActiveTiers(context.Context) (tier.Tiers, error) {
	return nil, errNotUsed
}
func (f *FakeTierService) ListPaidTiers(ctx context.Context) (tier.Tiers, error) {
	if f.ListPaidTiersFunc == nil {
		return nil, errNotUsed
	}
	return f.ListPaidTiersFunc(ctx)
}
func (f *FakeTierService) DefaultTier(context.Context) (*tier.Tier, error) { return nil, errNotUsed }
func (f *FakeTierService) Seed(context.Context) (tier.Tiers, error)        { return nil, errNotUsed }

type FakeAuthService struct {
	RegisterFunc       func(ctx context.Context, name, email, password string) (*user.Session, error)
	LoginFunc          func(ctx context.Context, email, password string) (*user.Session, error)
	MeFunc             func(ctx context.Context, id user.UUID) (*user.User, error)
	UpdateProfileFunc  func(ctx context.Context, id user.UUID, name, email *string) (*user.User, error)
	ChangePasswordFunc func(ctx context.Context, id user.UUID, current, next string) error
}

func (f *FakeAuthService) Register(ctx context.Context, name, email, password string) (*user.Session, error) {
	if f.RegisterFunc == nil {
		return nil, errNotUsed
	}
	return f.RegisterFunc(ctx, name, email, password)
}
func (f *FakeAuthService) Login(ctx context.Context, email, password string) (*user.Session, error) {
	if f.LoginFunc == nil {
		return nil, errNotUsed
	}
	return f.LoginFunc(ctx, email, password)
}
func (f *FakeAuthService) Me(ctx context.Context, id user.UUID) (*user.User, error) {
	if f.MeFunc == nil {
		return nil, errNotUsed
	}
	return f.MeFunc(ctx, id)
}
func (f *FakeAuthService) UpdateProfile(ctx context.Context, id user.UUID, name, email *string) (*user.User, error) {
	if f.UpdateProfileFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateProfileFunc(ctx, id, name, email)
}
func (f *FakeAuthService) ChangePassword(ctx context.Context, id user.UUID, current, next string) error {
	if f.ChangePasswordFunc == nil {
		return errNotUsed
	}
	return f.ChangePasswordFunc(ctx, id, current, next)
}

func newTestEngine(t *testing.T) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New(), jwtSvc.New(testSecret)
}

func bearerFor(t *testing.T, j *jwtSvc.Service, id uuid.UUID, admin bool) map[string]string {
	t.Helper()
	tok, err := j.GenerateJWT(id.String(), "user@example.com", admin, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
