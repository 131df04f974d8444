package payment

import (
	"context"

	"github.com/google/uuid"

	"file-share-api/internal/domain/file"
)

type Repository interface {
	FetchPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	FetchByGatewayPaymentID(ctx context.Context, gateway Gateway, gatewayPaymentID string) (*Payment, error)
	CreatePayment(ctx context.Context, req *Payment) (*Payment, error)
	// Transition moves a payment out of StatusCreated. It returns (nil, nil)
	// when the payment was no longer in StatusCreated.
	Transition(ctx context.Context, id uuid.UUID, to Status, gatewayPaymentID string) (*Payment, error)
	// Settle moves a payment to StatusSuccessful and writes grant's entitlement
	// to the file in one transaction. Neither change is kept if either fails.
	// It returns (nil, nil, nil) when the payment was no longer in
	// StatusCreated, and a nil file when the file record is gone.
	Settle(ctx context.Context, id uuid.UUID, gatewayPaymentID string, grant *file.File) (*Payment, *file.File, error)
}
