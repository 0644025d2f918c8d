package events

import (
	"time"
)

// Type names one kind of lifecycle event.
type Type string

const (
	PaymentCreated  Type = "payment.created"
	PaymentSuccess  Type = "payment.success"
	PaymentFailed   Type = "payment.failed"
	RefundSuccess   Type = "refund.success"
	RefundFailed    Type = "refund.failed"
	WebhookReceived Type = "webhook.received"
)

// Event is published once and never retained.
type Event struct {
	Type      Type      `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, data any) Event {
	return Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()}
}

// Failure is the payload of every *.failed event.
type Failure struct {
	RequestID string `json:"requestId"`
	Operation string `json:"operation"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Input     any    `json:"input,omitempty"`
}

// Webhook is the payload of webhook.received.
type Webhook struct {
	Payload   map[string]any `json:"payload"`
	Raw       []byte         `json:"-"`
	Signature string         `json:"signature,omitempty"`
	Verified  bool           `json:"verified"`
}
