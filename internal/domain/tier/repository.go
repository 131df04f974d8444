package tier

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	FetchTier(ctx context.Context, id uuid.UUID) (*Tier, error)
	FetchActiveTiers(ctx context.Context) (Tiers, error)
	FetchDefaultTier(ctx context.Context) (*Tier, error)
	UpsertTier(ctx context.Context, req Tier) (*Tier, error)
}
