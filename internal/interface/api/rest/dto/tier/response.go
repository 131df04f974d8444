package tier

import (
	"time"

	"github.com/google/uuid"
)

type (
	Tier struct {
		ID              uuid.UUID `json:"id"`
		Name            string    `json:"name"`
		Description     string    `json:"description"`
		FileSizeLimit   int       `json:"fileSizeLimit"`
		ValidityInHours int       `json:"validityInHours"`
		Price           int64     `json:"price"`
		CurrencyCode    string    `json:"currencyCode"`
		IsActive        bool      `json:"isActive"`
		IsDefault       bool      `json:"isDefault"`
		CreatedAt       time.Time `json:"createdAt"`
		UpdatedAt       time.Time `json:"updatedAt"`
	}
	Tiers []Tier
)
