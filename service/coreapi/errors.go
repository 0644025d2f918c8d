package coreapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/antinvestor/bkash-api/service/models"
)

// ErrApplicationFailure marks a 2xx response whose body reports a failed operation.
var ErrApplicationFailure = errors.New("upstream reported failure")

// TransportError is a failed exchange with the gateway. StatusCode is zero when no
// response was received; Body holds the decoded upstream error payload when it was JSON.
type TransportError struct {
	StatusCode int
	Body       map[string]any
	Raw        []byte
	Err        error
}

func newTransportError(statusCode int, raw []byte, err error) *TransportError {
	te := &TransportError{StatusCode: statusCode, Raw: raw, Err: err}
	if len(raw) > 0 {
		var body map[string]any
		if json.Unmarshal(raw, &body) == nil {
			te.Body = body
		}
	}
	return te
}

func (e *TransportError) Error() string {
	msg := e.UpstreamMessage()
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("bkash transport: %v", e.Err)
	case msg != "":
		return fmt.Sprintf("bkash upstream (HTTP %d, code %s): %s", e.StatusCode, e.UpstreamCode(), msg)
	case e.Err != nil:
		return fmt.Sprintf("bkash upstream (HTTP %d): %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("bkash upstream (HTTP %d)", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamCode returns the gateway statusCode or errorCode, if any.
func (e *TransportError) UpstreamCode() string {
	return stringField(e.Body, "statusCode", "errorCode")
}

// UpstreamMessage returns the gateway statusMessage or errorMessage, if any.
func (e *TransportError) UpstreamMessage() string {
	return stringField(e.Body, "statusMessage", "errorMessage")
}

// Unauthorized reports whether the gateway rejected the access token.
func (e *TransportError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Details returns the normalized upstream payload, nil when nothing was received.
func (e *TransportError) Details() any {
	if e.Body != nil {
		return e.Body
	}
	if len(e.Raw) > 0 {
		return string(e.Raw)
	}
	return nil
}

// applicationFailure detects the gateway reporting failure inside a 2xx body.
func applicationFailure(raw []byte) bool {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return false
	}
	if code, ok := body["statusCode"].(string); ok && code != models.StatusCodeSuccess {
		return true
	}
	_, hasErrorCode := body["errorCode"]
	return hasErrorCode
}

func stringField(body map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := body[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
