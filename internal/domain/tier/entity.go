package tier

import (
	"time"

	"github.com/google/uuid"
)

type (
	Tier struct {
		UUID            uuid.UUID
		Name            string
		Description     string
		FileSizeLimitGB int
		ValidityInHours int
		Price           int64
		CurrencyCode    string
		IsActive        bool
		IsDefault       bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Tiers []*Tier
)

func (t *Tier) Paid() bool { return t.Price > 0 }

// Paid returns the tiers offered for purchase.
func (ts Tiers) Paid() Tiers {
	out := make(Tiers, 0, len(ts))
	for _, t := range ts {
		if t.Paid() {
			out = append(out, t)
		}
	}
	return out
}
