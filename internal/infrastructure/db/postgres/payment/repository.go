package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/payment"
	"file-share-api/internal/infrastructure/db/postgres"
	filerepo "file-share-api/internal/infrastructure/db/postgres/file"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) payment.Repository {
	return &Repository{db: db}
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	p := new(Payment)
	err := row.Scan(
		&p.UUID,
		&p.Amount,
		&p.Currency,
		&p.FileID,
		&p.Gateway,
		&p.GatewayPaymentID,
		&p.GatewayOrderID,
		&p.Status,
		&p.PricingTierID,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) FetchPayment(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, SelectPaymentByID, id))
}

func (r *Repository) FetchByGatewayPaymentID(ctx context.Context, gateway payment.Gateway, gatewayPaymentID string) (*payment.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, SelectPaymentByGatewayPaymentID, string(gateway), gatewayPaymentID))
}

func (r *Repository) CreatePayment(ctx context.Context, req *payment.Payment) (*payment.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(
		ctx,
		InsertPayment,
		req.Amount, req.Currency, req.FileID, string(req.Gateway), req.GatewayPaymentID, req.GatewayOrderID,
		string(req.Status), req.PricingTierID,
	))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("insert payment returned no row")
	}

	return p, nil
}

func (r *Repository) Transition(ctx context.Context, id uuid.UUID, to payment.Status, gatewayPaymentID string) (*payment.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, TransitionPayment, string(to), gatewayPaymentID, id))
}

func (r *Repository) Settle(
	ctx context.Context,
	id uuid.UUID,
	gatewayPaymentID string,
	grant *file.File,
) (*payment.Payment, *file.File, error) {
	var (
		p *payment.Payment
		f *file.File
	)
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		p, err = scanPayment(tx.QueryRow(ctx, TransitionPayment, string(payment.StatusSuccessful), gatewayPaymentID, id))
		if err != nil {
			return fmt.Errorf("transition payment: %w", err)
		}
		if p == nil {
			return nil
		}

		f, err = filerepo.NewRepository(tx).UpdateEntitlement(ctx, grant)
		if err != nil {
			return fmt.Errorf("update entitlement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return p, f, nil
}
