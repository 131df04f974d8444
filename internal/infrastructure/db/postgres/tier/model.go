package tier

import (
	"time"

	"github.com/google/uuid"
)

type Tier struct {
	UUID            uuid.UUID
	Name            string
	Description     string
	FileSizeLimitGB int
	ValidityHours   int
	Price           int64
	CurrencyCode    string
	IsActive        bool
	IsDefault       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
