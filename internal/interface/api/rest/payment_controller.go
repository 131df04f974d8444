package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	domain "file-share-api/internal/domain/payment"
	"file-share-api/internal/interface/api/rest/dto/payment"
	"file-share-api/internal/interface/api/rest/dto/tier"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

const (
	maxWebhookBody      = int64(1 << 20)
	headerStripeSigning = "Stripe-Signature"
)

type PaymentController struct {
	paymentService ports.PaymentService
	tierService    ports.TierService
	logger         *zap.Logger
}

func NewPaymentController(
	r *gin.Engine,
	paymentService ports.PaymentService,
	tierService ports.TierService,
	logger *zap.Logger,
	tokens ports.TokenService,
) *PaymentController {
	pc := &PaymentController{
		paymentService: paymentService,
		tierService:    tierService,
		logger:         logger,
	}

	auth := middleware.AuthMiddleware(tokens)
	r.GET(RoutePricingTiers, pc.PricingTiersHandler)
	r.POST(RouteRazorpayInit, auth, pc.RazorpayInitHandler)
	r.POST(RouteRazorpayVerify, auth, pc.RazorpayVerifyHandler)
	r.POST(RouteStripeInit, auth, pc.StripeInitHandler)
	r.POST(RouteStripeWebhook, pc.StripeWebhookHandler)
	r.GET(RoutePaymentStatus, auth, pc.StatusHandler)

	return pc
}

func (pc *PaymentController) PricingTiersHandler(c *gin.Context) {
	tiers, err := pc.tierService.ListPaidTiers(c.Request.Context())
	if err != nil {
		writeError(c, pc.logger, err, "Error fetching pricing tiers")
		return
	}

	c.JSON(http.StatusOK, tier.ToResponseTiers(tiers))
}

func (pc *PaymentController) RazorpayInitHandler(c *gin.Context) {
	pc.init(c, domain.GatewayRazorpay)
}

func (pc *PaymentController) StripeInitHandler(c *gin.Context) {
	pc.init(c, domain.GatewayStripe)
}

func (pc *PaymentController) init(c *gin.Context, gw domain.Gateway) {
	var req payment.InitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", nil)
		return
	}
	if req.FileID == uuid.Nil || req.PricingTierID == uuid.Nil {
		badRequest(c, "fileId and pricingTierId are required", nil)
		return
	}

	out, err := pc.paymentService.InitPayment(c.Request.Context(), req.ToDomain(gw))
	if err != nil {
		writeError(c, pc.logger, err, "Error initializing payment")
		return
	}

	if gw == domain.GatewayRazorpay {
		c.JSON(http.StatusOK, payment.ToRazorpayInitResponse(*out))
		return
	}
	c.JSON(http.StatusOK, payment.ToStripeInitResponse(*out))
}

func (pc *PaymentController) RazorpayVerifyHandler(c *gin.Context) {
	var req payment.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", nil)
		return
	}
	if req.PaymentID == uuid.Nil || req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		badRequest(c, "paymentId, razorpayPaymentId, razorpayOrderId and razorpaySignature are required", nil)
		return
	}

	p, err := pc.paymentService.VerifyRazorpay(c.Request.Context(), req.ToDomain())
	if err != nil {
		writeError(c, pc.logger, err, "Error verifying payment")
		return
	}

	c.JSON(http.StatusOK, payment.ToVerifyResponse(*p))
}

// StripeWebhookHandler verifies the signature over the exact bytes received,
// so the body must not be decoded before it reaches the service.
func (pc *PaymentController) StripeWebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, "Webhook error", nil)
		return
	}

	err = pc.paymentService.HandleStripeWebhook(c.Request.Context(), payload, c.GetHeader(headerStripeSigning))
	if err != nil {
		writeError(c, pc.logger, err, "Webhook error")
		return
	}

	c.JSON(http.StatusOK, payment.WebhookResponse{Received: true})
}

func (pc *PaymentController) StatusHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("payment_id"))
	if !ok {
		badRequest(c, "payment_id must be a valid UUID", nil)
		return
	}

	p, err := pc.paymentService.CheckStatus(c.Request.Context(), id)
	if err != nil {
		writeError(c, pc.logger, err, "Error checking payment status")
		return
	}

	c.JSON(http.StatusOK, payment.ToStatusResponse(*p))
}
