package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/apperr"
	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/notification"
	domain "file-share-api/internal/domain/payment"
	"file-share-api/internal/domain/tier"
)

const (
	msgPaymentNotFound   = "Payment not found"
	msgInvalidTier       = "Invalid or inactive pricing tier"
	msgInvalidSignature  = "Invalid payment signature"
	msgWebhookError      = "Webhook error"
	minorUnitsPerMajor   = 100
	defaultUSDConversion = 75
)

type PaymentService struct {
	paymentRepository domain.Repository
	tierRepository    tier.Repository
	fileRepository    file.Repository
	fileService       ports.FileService
	razorpay          ports.RazorpayGateway
	stripe            ports.StripeGateway
	notifier          ports.Notifier
	mCounter          *prometheus.CounterVec
	logger            *zap.Logger
	usdDivisor        int64
	now               func() time.Time
}

func NewPaymentService(
	paymentRepository domain.Repository,
	tierRepository tier.Repository,
	fileRepository file.Repository,
	fileService ports.FileService,
	razorpay ports.RazorpayGateway,
	stripe ports.StripeGateway,
	notifier ports.Notifier,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	usdDivisor int64,
) ports.PaymentService {
	if usdDivisor <= 0 {
		usdDivisor = defaultUSDConversion
	}

	return &PaymentService{
		paymentRepository: paymentRepository,
		tierRepository:    tierRepository,
		fileRepository:    fileRepository,
		fileService:       fileService,
		razorpay:          razorpay,
		stripe:            stripe,
		notifier:          notifier,
		mCounter:          mCounter,
		logger:            logger,
		usdDivisor:        usdDivisor,
		now:               time.Now,
	}
}

func (ps *PaymentService) InitPayment(ctx context.Context, req domain.InitRequest) (*domain.Init, error) {
	if req.Gateway != domain.GatewayRazorpay && req.Gateway != domain.GatewayStripe {
		return nil, apperr.Validation("Unsupported payment gateway")
	}

	f, err := ps.fileRepository.FetchFile(ctx, req.FileID)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	if f == nil {
		return nil, apperr.NotFound(msgFileNotFound)
	}

	t, err := ps.tierRepository.FetchTier(ctx, req.TierID)
	if err != nil {
		return nil, fmt.Errorf("fetch tier: %w", err)
	}
	if t == nil || !t.IsActive {
		return nil, apperr.NotFound(msgInvalidTier)
	}

	var out *domain.Init
	if req.Gateway == domain.GatewayRazorpay {
		out, err = ps.initRazorpay(ctx, f, t)
	} else {
		out, err = ps.initStripe(ctx, f, t, req.Currency)
	}
	if err != nil {
		return nil, err
	}

	ps.mCounter.WithLabelValues("payments_created_total").Inc()

	return out, nil
}

func (ps *PaymentService) initRazorpay(ctx context.Context, f *file.File, t *tier.Tier) (*domain.Init, error) {
	orderID, err := ps.razorpay.CreateOrder(ctx, t.Price*minorUnitsPerMajor, t.CurrencyCode, receipt(f.UUID))
	if err != nil {
		return nil, apperr.Upstream("create razorpay order", err)
	}

	p, err := ps.paymentRepository.CreatePayment(ctx, &domain.Payment{
		Amount:         t.Price,
		Currency:       t.CurrencyCode,
		FileID:         f.UUID,
		Gateway:        domain.GatewayRazorpay,
		GatewayOrderID: orderID,
		Status:         domain.StatusCreated,
		PricingTierID:  t.UUID,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	return &domain.Init{Payment: p, OrderID: orderID, KeyID: ps.razorpay.KeyID()}, nil
}

func (ps *PaymentService) initStripe(ctx context.Context, f *file.File, t *tier.Tier, requested string) (*domain.Init, error) {
	amount, currency := t.Price, t.CurrencyCode
	if strings.EqualFold(currency, "INR") && strings.EqualFold(requested, "USD") {
		amount = (amount + ps.usdDivisor - 1) / ps.usdDivisor
		currency = "USD"
	}

	intent, err := ps.stripe.CreateIntent(ctx, amount*minorUnitsPerMajor, currency, map[string]string{
		"fileId":        f.UUID.String(),
		"pricingTierId": t.UUID.String(),
	})
	if err != nil {
		return nil, apperr.Upstream("create stripe intent", err)
	}

	p, err := ps.paymentRepository.CreatePayment(ctx, &domain.Payment{
		Amount:           amount,
		Currency:         currency,
		FileID:           f.UUID,
		Gateway:          domain.GatewayStripe,
		GatewayPaymentID: intent.ID,
		Status:           domain.StatusCreated,
		PricingTierID:    t.UUID,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	return &domain.Init{Payment: p, ClientSecret: intent.ClientSecret, PublicKey: ps.stripe.PublicKey()}, nil
}

// VerifyRazorpay checks the checkout signature before touching any record.
func (ps *PaymentService) VerifyRazorpay(ctx context.Context, req domain.RazorpayVerification) (*domain.Payment, error) {
	if err := ps.razorpay.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.Signature); err != nil {
		ps.mCounter.WithLabelValues("payments_signature_rejected_total").Inc()
		return nil, apperr.New(apperr.ErrInvalidSignature, msgInvalidSignature)
	}

	p, err := ps.fetch(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if p.Gateway != domain.GatewayRazorpay || p.GatewayOrderID != req.RazorpayOrderID {
		return nil, apperr.New(apperr.ErrInvalidSignature, msgInvalidSignature)
	}

	return ps.complete(ctx, p, req.RazorpayPaymentID)
}

func (ps *PaymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	ev, err := ps.stripe.ParseWebhook(payload, signatureHeader)
	if err != nil {
		ps.logger.Warn("stripe webhook rejected", zap.Error(err))
		ps.mCounter.WithLabelValues("payments_signature_rejected_total").Inc()
		return apperr.New(apperr.ErrInvalidSignature, msgWebhookError)
	}

	switch ev.Type {
	case domain.EventIntentSucceeded, domain.EventIntentFailed:
	default:
		ps.logger.Debug("stripe event ignored", zap.String("type", ev.Type), zap.String("id", ev.ID))
		return nil
	}

	p, err := ps.paymentRepository.FetchByGatewayPaymentID(ctx, domain.GatewayStripe, ev.Intent.ID)
	if err != nil {
		return fmt.Errorf("fetch payment by intent: %w", err)
	}
	if p == nil {
		ps.logger.Warn("stripe event for unknown intent", zap.String("intent", ev.Intent.ID))
		return nil
	}

	if ev.Type == domain.EventIntentSucceeded {
		_, err = ps.complete(ctx, p, ev.Intent.ID)
		return err
	}

	_, err = ps.fail(ctx, p)
	return err
}

func (ps *PaymentService) CheckStatus(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	p, err := ps.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Gateway != domain.GatewayStripe || p.Status != domain.StatusCreated {
		return p, nil
	}

	intent, err := ps.stripe.GetIntent(ctx, p.GatewayPaymentID)
	if err != nil {
		return nil, apperr.Upstream("retrieve stripe intent", err)
	}

	switch intent.Status {
	case domain.IntentSucceeded:
		return ps.complete(ctx, p, intent.ID)
	case domain.IntentCanceled:
		return ps.fail(ctx, p)
	}

	return p, nil
}

// complete moves p to successful and writes its tier to the file in one
// transaction. If either write fails p stays created. Only the caller that
// wins the transition sends the confirmation.
func (ps *PaymentService) complete(ctx context.Context, p *domain.Payment, gatewayPaymentID string) (*domain.Payment, error) {
	if p.Status != domain.StatusCreated {
		ps.logger.Info("payment already processed", zap.String("payment", p.UUID.String()))
		return p, nil
	}

	t, err := ps.tierRepository.FetchTier(ctx, p.PricingTierID)
	if err != nil {
		return nil, fmt.Errorf("fetch tier: %w", err)
	}
	if t == nil {
		ps.logger.Error("paid tier no longer exists",
			zap.String("payment", p.UUID.String()),
			zap.String("tier", p.PricingTierID.String()),
		)
		return ps.settleWithoutTier(ctx, p, gatewayPaymentID)
	}

	grant, err := ps.fileService.TierGrant(ctx, p.FileID, t, p.UUID)
	if err != nil {
		ps.logger.Error("prepare tier grant failed",
			zap.String("payment", p.UUID.String()),
			zap.String("file", p.FileID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	won, f, err := ps.paymentRepository.Settle(ctx, p.UUID, gatewayPaymentID, grant)
	if err != nil {
		ps.logger.Error("settle payment failed",
			zap.String("payment", p.UUID.String()),
			zap.String("file", p.FileID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("settle payment: %w", err)
	}
	if won == nil {
		ps.logger.Info("payment already processed", zap.String("payment", p.UUID.String()))
		return ps.fetch(ctx, p.UUID)
	}

	ps.mCounter.WithLabelValues("payments_successful_total").Inc()

	if f == nil {
		ps.logger.Warn("paid file no longer exists",
			zap.String("payment", won.UUID.String()),
			zap.String("file", won.FileID.String()),
		)
		return won, nil
	}

	ps.mCounter.WithLabelValues("tiers_applied_total").Inc()

	if f.Email != nil && *f.Email != "" {
		e := notification.New(notification.KindPaymentConfirmed, *f.Email, ps.now())
		e.FileName = f.OriginalName
		e.Plan = t.Name
		e.Amount = won.Amount
		e.Currency = won.Currency
		e.TransactionID = won.GatewayPaymentID
		e.ExpiresAt = f.ExpiresAt
		_ = ps.notifier.Publish(e)
	}

	return won, nil
}

func (ps *PaymentService) settleWithoutTier(ctx context.Context, p *domain.Payment, gatewayPaymentID string) (*domain.Payment, error) {
	won, err := ps.paymentRepository.Transition(ctx, p.UUID, domain.StatusSuccessful, gatewayPaymentID)
	if err != nil {
		return nil, fmt.Errorf("mark payment successful: %w", err)
	}
	if won == nil {
		return ps.fetch(ctx, p.UUID)
	}

	ps.mCounter.WithLabelValues("payments_successful_total").Inc()

	return won, nil
}

func (ps *PaymentService) fail(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	out, err := ps.paymentRepository.Transition(ctx, p.UUID, domain.StatusFailed, "")
	if err != nil {
		return nil, fmt.Errorf("mark payment failed: %w", err)
	}
	if out == nil {
		return ps.fetch(ctx, p.UUID)
	}

	ps.mCounter.WithLabelValues("payments_failed_total").Inc()

	return out, nil
}

func (ps *PaymentService) fetch(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	p, err := ps.paymentRepository.FetchPayment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch payment: %w", err)
	}
	if p == nil {
		return nil, apperr.NotFound(msgPaymentNotFound)
	}

	return p, nil
}

// receipt fits Razorpay's 40 character receipt limit.
func receipt(fileID uuid.UUID) string {
	return "File-" + hex.EncodeToString(fileID[:])
}
