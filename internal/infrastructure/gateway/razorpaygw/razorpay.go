package razorpaygw

import (
	"context"
	"errors"
	"fmt"

	"github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	"file-share-api/config"
)

var ErrSignatureMismatch = errors.New("razorpay signature mismatch")

type ordersAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Client struct {
	orders    ordersAPI
	keyID     string
	keySecret string
}

func New(cfg config.Razorpay) *Client {
	rc := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	return &Client{orders: rc.Order, keyID: cfg.KeyID, keySecret: cfg.KeySecret}
}

func (c *Client) KeyID() string { return c.keyID }

// CreateOrder opens an auto-captured order for amountMinor (paise) and returns its id.
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	order, err := c.orders.Create(map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay create order: %w", err)
	}

	id, _ := order["id"].(string)
	if id == "" {
		return "", errors.New("razorpay create order: response has no id")
	}

	return id, nil
}

// VerifySignature checks the checkout handler's razorpay_signature against
// "orderID|paymentID" signed with the key secret.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if signature == "" || !utils.VerifyPaymentSignature(params, signature, c.keySecret) {
		return ErrSignatureMismatch
	}
	return nil
}
