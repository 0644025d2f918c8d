package business

import (
	"github.com/google/uuid"
)

// RequestContext travels with one public call and is discarded afterwards.
type RequestContext struct {
	RequestID string
	Operation string
	Input     any
}

func newRequestContext(operation string, input any) *RequestContext {
	return &RequestContext{
		RequestID: uuid.NewString(),
		Operation: operation,
		Input:     input,
	}
}
