package payment

import "github.com/google/uuid"

type (
	InitRequest struct {
		FileID        uuid.UUID `json:"fileId"`
		PricingTierID uuid.UUID `json:"pricingTierId"`
		Currency      string    `json:"currency"`
	}

	VerifyRequest struct {
		PaymentID         uuid.UUID `json:"paymentId"`
		RazorpayPaymentID string    `json:"razorpayPaymentId"`
		RazorpayOrderID   string    `json:"razorpayOrderId"`
		RazorpaySignature string    `json:"razorpaySignature"`
	}
)
