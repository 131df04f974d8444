package services

import (
	"context"
	"fmt"

	"file-share-api/internal/application/ports"
	domain "file-share-api/internal/domain/tier"
)

// SeedTiers is the catalog installed by cmd/seed.
var SeedTiers = []domain.Tier{
	{
		Name:            "Free Tier",
		Description:     "Basic file sharing with limited size and validity",
		FileSizeLimitGB: 2,
		ValidityInHours: 4,
		Price:           0,
		CurrencyCode:    "INR",
		IsActive:        true,
		IsDefault:       true,
	},
	{
		Name:            "Standard Tier",
		Description:     "Larger files with a one day validity",
		FileSizeLimitGB: 5,
		ValidityInHours: 24,
		Price:           40,
		CurrencyCode:    "INR",
		IsActive:        true,
	},
	{
		Name:            "Premium Tier",
		Description:     "Largest files kept for three days",
		FileSizeLimitGB: 10,
		ValidityInHours: 72,
		Price:           80,
		CurrencyCode:    "INR",
		IsActive:        true,
	},
}

type TierService struct {
	tierRepository domain.Repository
}

func NewTierService(tierRepository domain.Repository) ports.TierService {
	return &TierService{tierRepository: tierRepository}
}

func (ts *TierService) ListActiveTiers(ctx context.Context) (domain.Tiers, error) {
	tiers, err := ts.tierRepository.FetchActiveTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch active tiers: %w", err)
	}

	return tiers, nil
}

func (ts *TierService) ListPaidTiers(ctx context.Context) (domain.Tiers, error) {
	tiers, err := ts.ListActiveTiers(ctx)
	if err != nil {
		return nil, err
	}

	return tiers.Paid(), nil
}

// DefaultTier returns (nil, nil) when no active tier is marked default.
func (ts *TierService) DefaultTier(ctx context.Context) (*domain.Tier, error) {
	t, err := ts.tierRepository.FetchDefaultTier(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch default tier: %w", err)
	}

	return t, nil
}

func (ts *TierService) Seed(ctx context.Context) (domain.Tiers, error) {
	out := make(domain.Tiers, 0, len(SeedTiers))
	for _, t := range SeedTiers {
		saved, err := ts.tierRepository.UpsertTier(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", t.Name, err)
		}
		out = append(out, saved)
	}

	return out, nil
}
