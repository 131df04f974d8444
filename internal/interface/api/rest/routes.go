package rest

const (
	// api
	RouteAPI = "/api"

	// files
	RouteFiles         = RouteAPI + "/files"
	RouteFileUploadURL = RouteFiles + "/getUploadUrl"
	RouteFileConfirm   = RouteFiles + "/confirmUpload/:file_id"
	RouteFileMyUploads = RouteFiles + "/my-uploads"
	RouteFileDownload  = RouteFiles + "/download/:file_id"
	RouteFile          = RouteFiles + "/:file_id"

	// payments
	RoutePayments       = RouteAPI + "/payments"
	RoutePricingTiers   = RoutePayments + "/pricing-tiers"
	RouteRazorpayInit   = RoutePayments + "/razorpay/init"
	RouteRazorpayVerify = RoutePayments + "/razorpay/verify"
	RouteStripeInit     = RoutePayments + "/stripe/init"
	RouteStripeWebhook  = RoutePayments + "/stripe/webhook"
	RoutePaymentStatus  = RoutePayments + "/:payment_id/status"

	// auth
	RouteAuth           = RouteAPI + "/auth"
	RouteRegister       = RouteAuth + "/register"
	RouteLogin          = RouteAuth + "/login"
	RouteMe             = RouteAuth + "/me"
	RouteLogout         = RouteAuth + "/logout"
	RouteProfile        = RouteAuth + "/profile"
	RouteChangePassword = RouteAuth + "/change-password"

	// admin
	RouteAdminClearFiles = RouteAPI + "/admin/clear-files"

	// ops
	RouteHealth  = RouteAPI + "/healthz"
	RouteMetrics = RouteAPI + "/metrics"
)
