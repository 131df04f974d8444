package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/notification"
	"file-share-api/internal/domain/payment"
	"file-share-api/internal/domain/tier"
	"file-share-api/internal/domain/user"
)

var errNotUsed = errors.New("not used")

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

// memFileRepo is an in-memory file.Repository.
type memFileRepo struct {
	mu        sync.Mutex
	files     map[uuid.UUID]*file.File
	createErr error
}

func newMemFileRepo(fls ...*file.File) *memFileRepo {
	r := &memFileRepo{files: map[uuid.UUID]*file.File{}}
	for _, f := range fls {
		r.files[f.UUID] = f
	}
	return r
}

func (r *memFileRepo) FetchFile(_ context.Context, id uuid.UUID) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *memFileRepo) FetchUserFiles(_ context.Context, userID uuid.UUID) (file.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out file.Files
	for _, f := range r.files {
		if f.UserID != nil && *f.UserID == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *memFileRepo) CreateFile(_ context.Context, req *file.File) (*file.File, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	cp.UUID = uuid.New()
	r.files[cp.UUID] = &cp
	out := cp
	return &out, nil
}

func (r *memFileRepo) RefreshDownloadURL(_ context.Context, id uuid.UUID, url string) (*file.File, error) {
	return r.update(id, func(f *file.File) { f.DownloadURL = url })
}

func (r *memFileRepo) ConfirmFile(_ context.Context, req *file.File) (*file.File, error) {
	return r.update(req.UUID, func(f *file.File) {
		f.UserID, f.Email, f.DownloadURL, f.Status = req.UserID, req.Email, req.DownloadURL, req.Status
	})
}

func (r *memFileRepo) UpdateEntitlement(_ context.Context, req *file.File) (*file.File, error) {
	return r.update(req.UUID, func(f *file.File) {
		f.MaxSizeGB, f.ValidityHours, f.IsPremium = req.MaxSizeGB, req.ValidityHours, req.IsPremium
		f.PaymentID, f.ExpiresAt, f.DownloadURL = req.PaymentID, req.ExpiresAt, req.DownloadURL
	})
}

// update applies set to the stored row. Like the SQL repository it returns
// (nil, nil) when the row is gone.
func (r *memFileRepo) update(id uuid.UUID, set func(f *file.File)) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, nil
	}
	set(f)
	out := *f
	return &out, nil
}

func (r *memFileRepo) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
}

func (r *memFileRepo) DeleteExpired(_ context.Context, now time.Time) (file.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out file.Files
	for id, f := range r.files {
		if f.ExpiresAt.Before(now) {
			out = append(out, f)
			delete(r.files, id)
		}
	}
	return out, nil
}

func (r *memFileRepo) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.files))
	r.files = map[uuid.UUID]*file.File{}
	return n, nil
}

func (r *memFileRepo) get(id uuid.UUID) *file.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.files[id]
}

func (r *memFileRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.files)
}

type FakeStorage struct {
	PresignPutFunc  func(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignGetFunc  func(ctx context.Context, key, originalName string, ttl time.Duration) (string, error)
	ClearBucketFunc func(ctx context.Context) (file.PurgeResult, error)
}

func (f *FakeStorage) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if f.PresignPutFunc == nil {
		return "https://s3.test/put/" + key, nil
	}
	return f.PresignPutFunc(ctx, key, contentType, ttl)
}

func (f *FakeStorage) PresignGet(ctx context.Context, key, originalName string, ttl time.Duration) (string, error) {
	if f.PresignGetFunc == nil {
		return "https://s3.test/get/" + key, nil
	}
	return f.PresignGetFunc(ctx, key, originalName, ttl)
}

func (f *FakeStorage) ClearBucket(ctx context.Context) (file.PurgeResult, error) {
	if f.ClearBucketFunc == nil {
		return file.PurgeResult{}, errNotUsed
	}
	return f.ClearBucketFunc(ctx)
}

// recordingNotifier keeps every published event.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Publish(e notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) published() []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Event(nil), n.events...)
}

// memTierRepo is an in-memory tier.Repository.
type memTierRepo struct {
	tiers tier.Tiers
}

func (r *memTierRepo) FetchTier(_ context.Context, id uuid.UUID) (*tier.Tier, error) {
	for _, t := range r.tiers {
		if t.UUID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTierRepo) FetchActiveTiers(_ context.Context) (tier.Tiers, error) {
	var out tier.Tiers
	for _, t := range r.tiers {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTierRepo) FetchDefaultTier(_ context.Context) (*tier.Tier, error) {
	for _, t := range r.tiers {
		if t.IsActive && t.IsDefault {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTierRepo) UpsertTier(_ context.Context, req tier.Tier) (*tier.Tier, error) {
	for _, t := range r.tiers {
		if t.Name == req.Name {
			id := t.UUID
			*t = req
			t.UUID = id
			return t, nil
		}
	}
	req.UUID = uuid.New()
	r.tiers = append(r.tiers, &req)
	return &req, nil
}

// memPaymentRepo is an in-memory payment.Repository with the same
// conditional transition semantics as the SQL implementation. Settle writes
// the grant to files.
type memPaymentRepo struct {
	mu        sync.Mutex
	payments  map[uuid.UUID]*payment.Payment
	files     *memFileRepo
	settleErr error
}

func newMemPaymentRepo(ps ...*payment.Payment) *memPaymentRepo {
	r := &memPaymentRepo{payments: map[uuid.UUID]*payment.Payment{}}
	for _, p := range ps {
		r.payments[p.UUID] = p
	}
	return r
}

func (r *memPaymentRepo) FetchPayment(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) FetchByGatewayPaymentID(_ context.Context, gw payment.Gateway, id string) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.Gateway == gw && p.GatewayPaymentID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPaymentRepo) CreatePayment(_ context.Context, req *payment.Payment) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	cp.UUID = uuid.New()
	r.payments[cp.UUID] = &cp
	out := cp
	return &out, nil
}

func (r *memPaymentRepo) Transition(_ context.Context, id uuid.UUID, to payment.Status, gatewayPaymentID string) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != payment.StatusCreated {
		return nil, nil
	}
	p.Status = to
	if gatewayPaymentID != "" {
		p.GatewayPaymentID = gatewayPaymentID
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) Settle(
	ctx context.Context,
	id uuid.UUID,
	gatewayPaymentID string,
	grant *file.File,
) (*payment.Payment, *file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != payment.StatusCreated {
		return nil, nil, nil
	}
	if r.settleErr != nil {
		return nil, nil, r.settleErr
	}

	f, err := r.files.UpdateEntitlement(ctx, grant)
	if err != nil {
		return nil, nil, err
	}
	p.Status = payment.StatusSuccessful
	if gatewayPaymentID != "" {
		p.GatewayPaymentID = gatewayPaymentID
	}
	cp := *p
	return &cp, f, nil
}

func (r *memPaymentRepo) get(id uuid.UUID) *payment.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payments[id]
}

type FakeRazorpay struct {
	CreateOrderFunc     func(ctx context.Context, amountMinor int64, currency, receipt string) (string, error)
	VerifySignatureFunc func(orderID, paymentID, signature string) error
}

func (f *FakeRazorpay) KeyID() string { return "rzp_test_key" }

func (f *FakeRazorpay) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	if f.CreateOrderFunc == nil {
		return "", errNotUsed
	}
	return f.CreateOrderFunc(ctx, amountMinor, currency, receipt)
}

func (f *FakeRazorpay) VerifySignature(orderID, paymentID, signature string) error {
	if f.VerifySignatureFunc == nil {
		return errNotUsed
	}
	return f.VerifySignatureFunc(orderID, paymentID, signature)
}

type FakeStripe struct {
	CreateIntentFunc func(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (payment.Intent, error)
	GetIntentFunc    func(ctx context.Context, id string) (payment.Intent, error)
	ParseWebhookFunc func(payload []byte, signatureHeader string) (payment.WebhookEvent, error)
}

func (f *FakeStripe) PublicKey() string { return "pk_test" }

func (f *FakeStripe) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (payment.Intent, error) {
	if f.CreateIntentFunc == nil {
		return payment.Intent{}, errNotUsed
	}
	return f.CreateIntentFunc(ctx, amountMinor, currency, metadata)
}

func (f *FakeStripe) GetIntent(ctx context.Context, id string) (payment.Intent, error) {
	if f.GetIntentFunc == nil {
		return payment.Intent{}, errNotUsed
	}
	return f.GetIntentFunc(ctx, id)
}

func (f *FakeStripe) ParseWebhook(payload []byte, signatureHeader string) (payment.WebhookEvent, error) {
	if f.ParseWebhookFunc == nil {
		return payment.WebhookEvent{}, errNotUsed
	}
	return f.ParseWebhookFunc(payload, signatureHeader)
}

// memUserRepo is an in-memory user.Repository enforcing unique emails.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *memUserRepo) FetchUserByID(_ context.Context, id user.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == req.Email {
			return nil, user.ErrEmailAlreadyExists
		}
	}
	req.UUID = uuid.New()
	r.users[req.UUID] = &req
	cp := req
	return &cp, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id user.UUID, name, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	for _, o := range r.users {
		if o.UUID != id && o.Email == email {
			return nil, user.ErrEmailAlreadyExists
		}
	}
	u.Name, u.Email = name, email
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id user.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.New("no rows")
	}
	u.PasswordHash = hash
	return nil
}
