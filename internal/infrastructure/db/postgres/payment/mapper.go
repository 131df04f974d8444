package payment

import (
	domain "file-share-api/internal/domain/payment"
)

func fromDBModel(model *Payment) *domain.Payment {
	return &domain.Payment{
		UUID:             model.UUID,
		Amount:           model.Amount,
		Currency:         model.Currency,
		FileID:           model.FileID,
		Gateway:          domain.Gateway(model.Gateway),
		GatewayPaymentID: model.GatewayPaymentID,
		GatewayOrderID:   model.GatewayOrderID,
		Status:           domain.Status(model.Status),
		PricingTierID:    model.PricingTierID,
		CreatedAt:        model.CreatedAt,
	}
}
