package payment

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	UUID             uuid.UUID
	Amount           int64
	Currency         string
	FileID           uuid.UUID
	Gateway          string
	GatewayPaymentID string
	GatewayOrderID   string
	Status           string
	PricingTierID    uuid.UUID
	CreatedAt        time.Time
}
