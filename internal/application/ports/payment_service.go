package ports

import (
	"context"

	"github.com/google/uuid"

	"file-share-api/internal/domain/payment"
)

type PaymentService interface {
	InitPayment(ctx context.Context, req payment.InitRequest) (*payment.Init, error)
	VerifyRazorpay(ctx context.Context, req payment.RazorpayVerification) (*payment.Payment, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signatureHeader string) error
	CheckStatus(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
}
