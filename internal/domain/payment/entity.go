package payment

import (
	"time"

	"github.com/google/uuid"
)

type (
	Gateway string
	Status  string
)

const (
	GatewayRazorpay Gateway = "razorpay"
	GatewayStripe   Gateway = "stripe"

	StatusCreated    Status = "created"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
)

type (
	Payment struct {
		UUID             uuid.UUID
		Amount           int64
		Currency         string
		FileID           uuid.UUID
		Gateway          Gateway
		GatewayPaymentID string
		GatewayOrderID   string
		Status           Status
		PricingTierID    uuid.UUID
		CreatedAt        time.Time
	}

	// Init is what a client needs to finish a payment on the gateway side.
	Init struct {
		Payment      *Payment
		OrderID      string
		KeyID        string
		ClientSecret string
		PublicKey    string
	}

	// Intent is the gateway-neutral view of a Stripe payment intent.
	Intent struct {
		ID           string
		ClientSecret string
		Status       string
		Metadata     map[string]string
	}

	// WebhookEvent is a verified gateway event.
	WebhookEvent struct {
		ID     string
		Type   string
		Intent Intent
	}
)

const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"

	IntentSucceeded = "succeeded"
	IntentCanceled  = "canceled"
)

type (
	InitRequest struct {
		Gateway  Gateway
		FileID   uuid.UUID
		TierID   uuid.UUID
		Currency string
	}

	RazorpayVerification struct {
		PaymentID         uuid.UUID
		RazorpayPaymentID string
		RazorpayOrderID   string
		Signature         string
	}
)
