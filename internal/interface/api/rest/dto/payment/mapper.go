package payment

import (
	domain "file-share-api/internal/domain/payment"
)

func (r InitRequest) ToDomain(gw domain.Gateway) domain.InitRequest {
	return domain.InitRequest{Gateway: gw, FileID: r.FileID, TierID: r.PricingTierID, Currency: r.Currency}
}

func (r VerifyRequest) ToDomain() domain.RazorpayVerification {
	return domain.RazorpayVerification{
		PaymentID:         r.PaymentID,
		RazorpayPaymentID: r.RazorpayPaymentID,
		RazorpayOrderID:   r.RazorpayOrderID,
		Signature:         r.RazorpaySignature,
	}
}

func ToRazorpayInitResponse(in domain.Init) RazorpayInitResponse {
	return RazorpayInitResponse{
		PaymentID: in.Payment.UUID,
		OrderID:   in.OrderID,
		Amount:    in.Payment.Amount,
		Currency:  in.Payment.Currency,
		KeyID:     in.KeyID,
	}
}

func ToStripeInitResponse(in domain.Init) StripeInitResponse {
	return StripeInitResponse{
		PaymentID:    in.Payment.UUID,
		ClientSecret: in.ClientSecret,
		PublicKey:    in.PublicKey,
		Amount:       in.Payment.Amount,
		Currency:     in.Payment.Currency,
	}
}

func ToVerifyResponse(p domain.Payment) VerifyResponse {
	return VerifyResponse{
		Success:   true,
		Message:   "Payment verified successfully",
		FileID:    p.FileID,
		PaymentID: p.UUID,
	}
}

func ToStatusResponse(p domain.Payment) StatusResponse {
	return StatusResponse{
		PaymentID: p.UUID,
		Status:    string(p.Status),
		Amount:    p.Amount,
		Currency:  p.Currency,
		FileID:    p.FileID,
	}
}
