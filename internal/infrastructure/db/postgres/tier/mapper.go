package tier

import (
	domain "file-share-api/internal/domain/tier"
)

func fromDBModel(model *Tier) *domain.Tier {
	return &domain.Tier{
		UUID:            model.UUID,
		Name:            model.Name,
		Description:     model.Description,
		FileSizeLimitGB: model.FileSizeLimitGB,
		ValidityInHours: model.ValidityHours,
		Price:           model.Price,
		CurrencyCode:    model.CurrencyCode,
		IsActive:        model.IsActive,
		IsDefault:       model.IsDefault,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
