package models

const (
	// StatusCodeSuccess is the statusCode bKash returns on every successful checkout call.
	StatusCodeSuccess = "0000"

	// DefaultCheckoutMode is the tokenized checkout mode used when the caller leaves Mode empty.
	DefaultCheckoutMode = "0011"
)

// Result is the status envelope attached to checkout responses.
type Result struct {
	StatusCode    string `json:"statusCode,omitempty"`
	StatusMessage string `json:"statusMessage,omitempty"`
}

// Succeeded reports whether the envelope carries the success status code.
func (r Result) Succeeded() bool {
	return r.StatusCode == StatusCodeSuccess
}

// TransactionState is the pair the status classifiers operate on.
type TransactionState struct {
	StatusCode        string `json:"statusCode"`
	TransactionStatus string `json:"transactionStatus"`
}

// TransactionState lets a bare state be classified directly.
func (s TransactionState) TransactionState() TransactionState {
	return s
}
