package models

const (
	// LegacyRefundSKU is substituted when a legacy refund carries no line-item identifier.
	LegacyRefundSKU = "LEGACY"
	// DefaultRefundReason is substituted when a legacy refund carries no reason.
	DefaultRefundReason = "Customer request"

	RefundStatusCompleted = "Completed"
)

// RefundRequest is the canonical refund shape.
type RefundRequest struct {
	PaymentID    string `json:"paymentId"    validate:"required"`
	TrxID        string `json:"trxId"        validate:"required"`
	RefundAmount string `json:"refundAmount" validate:"required,money2"`
	SKU          string `json:"sku"          validate:"required,max=255"`
	Reason       string `json:"reason"       validate:"required,max=255"`
}

// LegacyRefundRequest is the older single-amount call shape.
type LegacyRefundRequest struct {
	PaymentID     string  `json:"paymentId"     validate:"required"`
	TransactionID string  `json:"transactionId" validate:"required"`
	Amount        float64 `json:"amount"        validate:"finite,gt=0"`
	Reason        string  `json:"reason,omitempty" validate:"omitempty,max=255"`
	SKU           string  `json:"sku,omitempty"    validate:"omitempty,max=255"`
}

type RefundResponse struct {
	Result
	OriginalTrxID           string `json:"originalTrxId"`
	RefundTrxID             string `json:"refundTrxId"`
	RefundTransactionStatus string `json:"refundTransactionStatus"`
	OriginalTrxAmount       string `json:"originalTrxAmount"`
	RefundAmount            string `json:"refundAmount"`
	Currency                string `json:"currency"`
	CompletedTime           string `json:"completedTime"`
	SKU                     string `json:"sku"`
	Reason                  string `json:"reason"`
}

func (r *RefundResponse) TransactionState() TransactionState {
	code := r.StatusCode
	if code == "" {
		code = StatusCodeSuccess
	}
	return TransactionState{StatusCode: code, TransactionStatus: r.RefundTransactionStatus}
}

// LegacyRefundResponse is the response shape older integrations expect.
type LegacyRefundResponse struct {
	Result
	CompletedTime     string `json:"completedTime"`
	TransactionStatus string `json:"transactionStatus"`
	OriginalTrxID     string `json:"originalTrxID"`
	RefundTrxID       string `json:"refundTrxID"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	Charge            string `json:"charge"`
}

type RefundStatusRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
	TrxID     string `json:"trxId"     validate:"required"`
}

type RefundTransaction struct {
	RefundTrxID             string `json:"refundTrxId"`
	RefundTransactionStatus string `json:"refundTransactionStatus"`
	RefundAmount            string `json:"refundAmount"`
	CompletedTime           string `json:"completedTime"`
}

type RefundStatusResponse struct {
	Result
	OriginalTrxID            string              `json:"originalTrxId"`
	OriginalTrxAmount        string              `json:"originalTrxAmount"`
	OriginalTrxCompletedTime string              `json:"originalTrxCompletedTime"`
	RefundTransactions       []RefundTransaction `json:"refundTransactions"`
}
