package models

// WebhookNotification is the subset of a bKash webhook body the relay reads.
// The handler itself treats the body as opaque JSON.
type WebhookNotification struct {
	PaymentID             string  `json:"paymentID"`
	TrxID                 string  `json:"trxID"`
	TransactionStatus     string  `json:"transactionStatus"`
	StatusCode            string  `json:"statusCode"`
	Amount                string  `json:"amount"`
	Currency              string  `json:"currency"`
	CustomerMsisdn        string  `json:"customerMsisdn"`
	MerchantInvoiceNumber string  `json:"merchantInvoiceNumber"`
	Charge                float64 `json:"charge,omitempty"`
}

func (n *WebhookNotification) TransactionState() TransactionState {
	code := n.StatusCode
	if code == "" {
		code = StatusCodeSuccess
	}
	return TransactionState{StatusCode: code, TransactionStatus: n.TransactionStatus}
}
