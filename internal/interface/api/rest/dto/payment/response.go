package payment

import "github.com/google/uuid"

type (
	RazorpayInitResponse struct {
		PaymentID uuid.UUID `json:"paymentId"`
		OrderID   string    `json:"orderId"`
		Amount    int64     `json:"amount"`
		Currency  string    `json:"currency"`
		KeyID     string    `json:"keyId"`
	}

	StripeInitResponse struct {
		PaymentID    uuid.UUID `json:"paymentId"`
		ClientSecret string    `json:"clientSecret"`
		PublicKey    string    `json:"publicKey"`
		Amount       int64     `json:"amount"`
		Currency     string    `json:"currency"`
	}

	VerifyResponse struct {
		Success   bool      `json:"success"`
		Message   string    `json:"message"`
		FileID    uuid.UUID `json:"fileId"`
		PaymentID uuid.UUID `json:"paymentId"`
	}

	StatusResponse struct {
		PaymentID uuid.UUID `json:"paymentId"`
		Status    string    `json:"status"`
		Amount    int64     `json:"amount"`
		Currency  string    `json:"currency"`
		FileID    uuid.UUID `json:"fileId"`
	}

	WebhookResponse struct {
		Received bool `json:"received"`
	}
)
