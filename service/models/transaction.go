package models

type SearchTransactionRequest struct {
	TrxID string `json:"trxID" validate:"required"`
}

type SearchTransactionResponse struct {
	Result
	TrxID                 string `json:"trxID"`
	InitiationTime        string `json:"initiationTime"`
	CompletedTime         string `json:"completedTime"`
	TransactionType       string `json:"transactionType"`
	CustomerMsisdn        string `json:"customerMsisdn"`
	TransactionStatus     string `json:"transactionStatus"`
	Amount                string `json:"amount"`
	Currency              string `json:"currency"`
	OrganizationShortCode string `json:"organizationShortCode"`
	TransactionReference  string `json:"transactionReference"`
}

func (r *SearchTransactionResponse) TransactionState() TransactionState {
	return TransactionState{StatusCode: r.StatusCode, TransactionStatus: r.TransactionStatus}
}
