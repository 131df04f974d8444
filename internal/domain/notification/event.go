package notification

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindFileShared       Kind = "file.shared"
	KindFileExpired      Kind = "file.expired"
	KindPaymentConfirmed Kind = "payment.confirmed"
	KindUserRegistered   Kind = "user.registered"
)

// Kinds lists every routing key a consumer binds to.
var Kinds = []Kind{KindFileShared, KindFileExpired, KindPaymentConfirmed, KindUserRegistered}

// Event is an email-worthy fact. Only the fields relevant to Kind are set.
type Event struct {
	ID   uuid.UUID `json:"eventId"`
	TS   time.Time `json:"timestamp"`
	Kind Kind      `json:"kind"`
	To   string    `json:"to"`

	Name          string    `json:"name,omitempty"`
	FileName      string    `json:"fileName,omitempty"`
	DownloadURL   string    `json:"downloadUrl,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt,omitzero"`
	Plan          string    `json:"plan,omitempty"`
	Amount        int64     `json:"amount,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	TransactionID string    `json:"transactionId,omitempty"`
}

func New(kind Kind, to string, now time.Time) Event {
	return Event{ID: uuid.New(), TS: now.UTC(), Kind: kind, To: to}
}
