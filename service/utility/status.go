package utility

import (
	"strings"

	"github.com/antinvestor/bkash-api/service/models"
)

// Transaction statuses reported by the gateway.
const (
	StatusCompleted  = "Completed"
	StatusInitiated  = "Initiated"
	StatusInprogress = "Inprogress"
	StatusPending    = "Pending"
	StatusAuthorized = "Authorized"
)

var pendingStatuses = map[string]struct{}{
	StatusInitiated:  {},
	StatusInprogress: {},
	StatusPending:    {},
	StatusAuthorized: {},
}

// Classifiable is anything carrying a statusCode and transactionStatus pair.
type Classifiable interface {
	TransactionState() models.TransactionState
}

func state(s Classifiable) (models.TransactionState, bool) {
	if s == nil {
		return models.TransactionState{}, false
	}
	st := s.TransactionState()
	st.StatusCode = strings.TrimSpace(st.StatusCode)
	st.TransactionStatus = strings.TrimSpace(st.TransactionStatus)
	return st, true
}

func IsTransactionSuccessful(s Classifiable) bool {
	st, ok := state(s)
	return ok && st.StatusCode == models.StatusCodeSuccess && st.TransactionStatus == StatusCompleted
}

func IsTransactionPending(s Classifiable) bool {
	st, ok := state(s)
	if !ok || st.StatusCode != models.StatusCodeSuccess {
		return false
	}
	_, pending := pendingStatuses[st.TransactionStatus]
	return pending
}

// IsTransactionFailed is true for a non-success status code, or a success code
// with a status that is neither completed nor pending.
func IsTransactionFailed(s Classifiable) bool {
	st, ok := state(s)
	if !ok {
		return false
	}
	if st.StatusCode != models.StatusCodeSuccess {
		return st.StatusCode != "" || st.TransactionStatus != ""
	}
	if st.TransactionStatus == "" {
		return false
	}
	return !IsTransactionSuccessful(s) && !IsTransactionPending(s)
}
