package payment

const (
	paymentColumns = `uuid, amount, currency, file_id, gateway, gateway_payment_id, gateway_order_id, status,
		  pricing_tier_id, created_at`

	SelectPaymentByID = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE uuid = $1
	`
	SelectPaymentByGatewayPaymentID = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE gateway = $1 AND gateway_payment_id = $2
	`
	InsertPayment = `
		INSERT INTO payments (amount, currency, file_id, gateway, gateway_payment_id, gateway_order_id, status, pricing_tier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paymentColumns
	// The status guard makes the transition out of 'created' happen at most once.
	TransitionPayment = `
		UPDATE payments
		SET status = $1,
		    gateway_payment_id = COALESCE(NULLIF($2, ''), gateway_payment_id)
		WHERE uuid = $3 AND status = 'created'
		RETURNING ` + paymentColumns
)
