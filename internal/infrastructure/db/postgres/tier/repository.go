package tier

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"file-share-api/internal/domain/tier"
	"file-share-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) tier.Repository {
	return &Repository{db: db}
}

func scanTier(row pgx.Row) (*Tier, error) {
	t := new(Tier)
	err := row.Scan(
		&t.UUID,
		&t.Name,
		&t.Description,
		&t.FileSizeLimitGB,
		&t.ValidityHours,
		&t.Price,
		&t.CurrencyCode,
		&t.IsActive,
		&t.IsDefault,

		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (r *Repository) fetchOne(ctx context.Context, sql string, args ...any) (*tier.Tier, error) {
	t, err := scanTier(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(t), nil
}

func (r *Repository) FetchTier(ctx context.Context, id uuid.UUID) (*tier.Tier, error) {
	return r.fetchOne(ctx, SelectTierByID, id)
}

func (r *Repository) FetchDefaultTier(ctx context.Context) (*tier.Tier, error) {
	return r.fetchOne(ctx, SelectDefaultTier)
}

func (r *Repository) FetchActiveTiers(ctx context.Context) (tier.Tiers, error) {
	rows, err := r.db.Query(ctx, SelectActiveTiers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ts tier.Tiers
	for rows.Next() {
		t, err := scanTier(rows)
		if err != nil {
			return nil, err
		}
		ts = append(ts, fromDBModel(t))
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ts, nil
}

func (r *Repository) UpsertTier(ctx context.Context, req tier.Tier) (*tier.Tier, error) {
	t, err := scanTier(r.db.QueryRow(
		ctx,
		UpsertTierByName,
		req.Name, req.Description, req.FileSizeLimitGB, req.ValidityInHours, req.Price, req.CurrencyCode,
		req.IsActive, req.IsDefault,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(t), nil
}
