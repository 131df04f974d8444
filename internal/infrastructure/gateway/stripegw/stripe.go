package stripegw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"file-share-api/config"
	"file-share-api/internal/domain/payment"
)

var ErrInvalidWebhook = errors.New("stripe webhook verification failed")

type intentsAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type Client struct {
	intents       intentsAPI
	publicKey     string
	webhookSecret string
}

func New(cfg config.Stripe) *Client {
	sc := client.New(cfg.SecretKey, nil)
	return &Client{intents: sc.PaymentIntents, publicKey: cfg.PublicKey, webhookSecret: cfg.WebhookSecret}
}

func (c *Client) PublicKey() string { return c.publicKey }

// CreateIntent opens a payment intent for amountMinor in currency.
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (payment.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.intents.New(params)
	if err != nil {
		return payment.Intent{}, fmt.Errorf("stripe create intent: %w", err)
	}

	return toIntent(pi), nil
}

func (c *Client) GetIntent(ctx context.Context, id string) (payment.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.intents.Get(id, params)
	if err != nil {
		return payment.Intent{}, fmt.Errorf("stripe get intent %s: %w", id, err)
	}

	return toIntent(pi), nil
}

// ParseWebhook verifies the Stripe-Signature header against the raw payload
// and decodes the event. Payment intent events carry the decoded intent.
func (c *Client) ParseWebhook(payload []byte, signatureHeader string) (payment.WebhookEvent, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return payment.WebhookEvent{}, fmt.Errorf("%w: %w", ErrInvalidWebhook, err)
	}

	out := payment.WebhookEvent{ID: ev.ID, Type: string(ev.Type)}
	if strings.HasPrefix(out.Type, "payment_intent.") && ev.Data != nil {
		var pi stripe.PaymentIntent
		if err = json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return payment.WebhookEvent{}, fmt.Errorf("decode payment intent: %w", err)
		}
		out.Intent = toIntent(&pi)
	}

	return out, nil
}

func toIntent(pi *stripe.PaymentIntent) payment.Intent {
	return payment.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}
