package models

// CreatePaymentRequest is the minimal checkout creation shape.
type CreatePaymentRequest struct {
	Mode                  string `json:"mode"                  validate:"omitempty,oneof=0011 0001 0000"`
	PayerReference        string `json:"payerReference"        validate:"required,max=255"`
	CallbackURL           string `json:"callbackURL"           validate:"required,url"`
	Amount                string `json:"amount"                validate:"required,money2"`
	Currency              string `json:"currency"              validate:"required,oneof=BDT"`
	Intent                string `json:"intent"                validate:"required,oneof=sale authorization"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber" validate:"required,max=255"`
}

// CreatePaymentFullRequest carries the optional fields the minimal shape leaves out.
type CreatePaymentFullRequest struct {
	CreatePaymentRequest
	MerchantAssociationInfo string `json:"merchantAssociationInfo,omitempty" validate:"omitempty,max=255"`
}

type CreatePaymentResponse struct {
	Result
	PaymentID             string `json:"paymentID"`
	PaymentCreateTime     string `json:"paymentCreateTime"`
	TransactionStatus     string `json:"transactionStatus"`
	Amount                string `json:"amount"`
	Currency              string `json:"currency"`
	Intent                string `json:"intent"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber"`
	BkashURL              string `json:"bkashURL"`
	CallbackURL           string `json:"callbackURL"`
	SuccessCallbackURL    string `json:"successCallbackURL"`
	FailureCallbackURL    string `json:"failureCallbackURL"`
	CancelledCallbackURL  string `json:"cancelledCallbackURL"`
}

func (r *CreatePaymentResponse) TransactionState() TransactionState {
	return TransactionState{StatusCode: r.StatusCode, TransactionStatus: r.TransactionStatus}
}

type ExecutePaymentRequest struct {
	PaymentID string `json:"paymentID" validate:"required"`
}

type ExecutePaymentResponse struct {
	Result
	PaymentID             string `json:"paymentID"`
	CustomerMsisdn        string `json:"customerMsisdn"`
	PayerReference        string `json:"payerReference"`
	PaymentExecuteTime    string `json:"paymentExecuteTime"`
	TrxID                 string `json:"trxID"`
	TransactionStatus     string `json:"transactionStatus"`
	Amount                string `json:"amount"`
	Currency              string `json:"currency"`
	Intent                string `json:"intent"`
	MerchantInvoiceNumber string `json:"merchantInvoiceNumber"`
}

func (r *ExecutePaymentResponse) TransactionState() TransactionState {
	return TransactionState{StatusCode: r.StatusCode, TransactionStatus: r.TransactionStatus}
}

type PaymentStatusRequest struct {
	PaymentID string `json:"paymentID" validate:"required"`
}

type PaymentStatusResponse struct {
	Result
	PaymentID              string `json:"paymentID"`
	Mode                   string `json:"mode"`
	PaymentCreateTime      string `json:"paymentCreateTime"`
	PaymentExecuteTime     string `json:"paymentExecuteTime"`
	TrxID                  string `json:"trxID"`
	TransactionStatus      string `json:"transactionStatus"`
	Amount                 string `json:"amount"`
	Currency               string `json:"currency"`
	Intent                 string `json:"intent"`
	MerchantInvoiceNumber  string `json:"merchantInvoiceNumber"`
	PayerReference         string `json:"payerReference"`
	UserVerificationStatus string `json:"userVerificationStatus"`
}

func (r *PaymentStatusResponse) TransactionState() TransactionState {
	return TransactionState{StatusCode: r.StatusCode, TransactionStatus: r.TransactionStatus}
}
