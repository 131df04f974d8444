package ports

import (
	"context"

	"file-share-api/internal/domain/payment"
)

type RazorpayGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) error
}

type StripeGateway interface {
	PublicKey() string
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (payment.Intent, error)
	GetIntent(ctx context.Context, id string) (payment.Intent, error)
	ParseWebhook(payload []byte, signatureHeader string) (payment.WebhookEvent, error)
}
