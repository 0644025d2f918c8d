package coreapi

const (
	pathTokenGrant        = "/tokenized/checkout/token/grant"
	pathTokenRefresh      = "/tokenized/checkout/token/refresh"
	pathCheckoutCreate    = "/tokenized/checkout/create"
	pathCheckoutExecute   = "/tokenized/checkout/execute"
	pathPaymentStatus     = "/tokenized/checkout/payment/status"
	pathSearchTransaction = "/tokenized/checkout/general/searchTransaction"
	pathRefund            = "/v2/tokenized-checkout/refund/payment/transaction"
	pathRefundStatus      = "/v2/tokenized-checkout/refund/payment/status"

	headerAppKey        = "X-App-Key"
	headerAuthorization = "Authorization"
	headerUsername      = "username"
	headerPassword      = "password"
)
