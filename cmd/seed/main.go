// Command seed applies migrations and upserts the default pricing tiers.
package main

import (
	"context"

	"go.uber.org/zap"

	"file-share-api/internal"
	"file-share-api/internal/application/services"
	"file-share-api/internal/infrastructure/db/postgres/tier"
)

func main() {
	ctx := context.Background()

	logger, _, db := internal.Bootstrap(ctx)
	defer db.Close()
	defer logger.Sync()

	tiers, err := services.NewTierService(tier.NewRepository(db)).Seed(ctx)
	if err != nil {
		logger.Fatal("failed to seed pricing tiers", zap.Error(err))
	}

	for _, t := range tiers {
		logger.Info("pricing tier seeded",
			zap.String("name", t.Name),
			zap.Int("file_size_limit_gb", t.FileSizeLimitGB),
			zap.Int("validity_hours", t.ValidityInHours),
			zap.Int64("price", t.Price),
		)
	}
}
