package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes carried by ClassifiedError. Callers branch on these.
const (
	CodeTokenError              = "TOKEN_ERROR"
	CodeTokenRefreshError       = "TOKEN_REFRESH_ERROR"
	CodeTokenGrantError         = "TOKEN_GRANT_ERROR"
	CodePaymentCreateError      = "PAYMENT_CREATE_ERROR"
	CodePaymentExecuteError     = "PAYMENT_EXECUTE_ERROR"
	CodePaymentVerifyError      = "PAYMENT_VERIFY_ERROR"
	CodePaymentQueryError       = "PAYMENT_QUERY_ERROR"
	CodeTransactionStatusError  = "TRANSACTION_STATUS_ERROR"
	CodeSearchError             = "SEARCH_ERROR"
	CodeRefundError             = "REFUND_ERROR"
	CodeRefundStatusError       = "REFUND_STATUS_ERROR"
	CodeWebhookSignatureMissing = "WEBHOOK_SIGNATURE_MISSING"
	CodeWebhookSignatureInvalid = "WEBHOOK_SIGNATURE_INVALID"
	CodeWebhookSecretMissing    = "WEBHOOK_SECRET_MISSING"
	CodeWebhookCallbackError    = "WEBHOOK_CALLBACK_ERROR"
	CodeWebhookPayloadInvalid   = "WEBHOOK_PAYLOAD_INVALID"
)

// ErrorKind tells which shape Details carries.
type ErrorKind int

const (
	// KindOther wraps any cause that is neither a transport nor a validation failure.
	KindOther ErrorKind = iota
	// KindTransport carries the upstream HTTP status and normalized body.
	KindTransport
	// KindValidation carries the offending fields.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	default:
		return "other"
	}
}

// ClassifiedError is the only error shape that leaves the public surface.
type ClassifiedError struct {
	Message string
	Code    string
	Details any
	Kind    ErrorKind
	Cause   error
}

// upstreamFailure is implemented by transport errors that carry a gateway payload.
type upstreamFailure interface {
	error
	Details() any
	UpstreamMessage() string
}

// NewClassifiedError classifies cause under code. A cause that is already
// classified keeps its kind and details but takes the new code.
func NewClassifiedError(code, message string, cause error) *ClassifiedError {
	ce := &ClassifiedError{Message: message, Code: code, Kind: KindOther, Cause: cause}
	if cause == nil {
		return ce
	}

	var validationErr *ValidationError
	var upstream upstreamFailure
	var inner *ClassifiedError
	switch {
	case errors.As(cause, &validationErr):
		ce.Kind = KindValidation
		ce.Details = validationErr.Fields
		ce.Message = fmt.Sprintf("%s: %s", message, validationErr.Error())
	case errors.As(cause, &inner):
		ce.Kind = inner.Kind
		ce.Details = inner.Details
		ce.Message = fmt.Sprintf("%s: %s", message, inner.Message)
	case errors.As(cause, &upstream):
		ce.Kind = KindTransport
		ce.Details = upstream.Details()
		if msg := upstream.UpstreamMessage(); msg != "" {
			ce.Message = fmt.Sprintf("%s: %s", message, msg)
		} else {
			ce.Message = fmt.Sprintf("%s: %s", message, upstream.Error())
		}
	default:
		ce.Details = cause.Error()
		ce.Message = fmt.Sprintf("%s: %s", message, cause.Error())
	}
	return ce
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// HasCode reports whether err is a ClassifiedError with the given code.
func HasCode(err error, code string) bool {
	var ce *ClassifiedError
	return errors.As(err, &ce) && ce.Code == code
}

// ValidationError lists every rejected input field with its message.
type ValidationError struct {
	Field   string
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) <= 1 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
