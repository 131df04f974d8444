package ports

import (
	"context"

	"file-share-api/internal/domain/tier"
)

type TierService interface {
	ListActiveTiers(ctx context.Context) (tier.Tiers, error)
	ListPaidTiers(ctx context.Context) (tier.Tiers, error)
	DefaultTier(ctx context.Context) (*tier.Tier, error)
	Seed(ctx context.Context) (tier.Tiers, error)
}
