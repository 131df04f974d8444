package tier

import (
	domain "file-share-api/internal/domain/tier"
)

func ToResponseTier(t domain.Tier) Tier {
	return Tier{
		ID:              t.UUID,
		Name:            t.Name,
		Description:     t.Description,
		FileSizeLimit:   t.FileSizeLimitGB,
		ValidityInHours: t.ValidityInHours,
		Price:           t.Price,
		CurrencyCode:    t.CurrencyCode,
		IsActive:        t.IsActive,
		IsDefault:       t.IsDefault,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func ToResponseTiers(ts domain.Tiers) Tiers {
	out := make(Tiers, len(ts))
	for idx, t := range ts {
		out[idx] = ToResponseTier(*t)
	}

	return out
}
