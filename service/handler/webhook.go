package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/antinvestor/bkash-api/service/events"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/sirupsen/logrus"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "X-Signature"

// Callback is awaited after a webhook has been accepted and published.
type Callback func(ctx context.Context, webhook events.Webhook) error

type WebhookHandler struct {
	Secret   string
	Bus      *events.Bus
	Callback Callback
	Logger   *logrus.Entry
}

func NewWebhookHandler(secret string, bus *events.Bus, callback Callback, logger *logrus.Entry) *WebhookHandler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &WebhookHandler{
		Secret:   secret,
		Bus:      bus,
		Callback: callback,
		Logger:   logger.WithField("component", "webhook"),
	}
}

// Sign returns the hex HMAC-SHA256 of raw under secret.
func Sign(secret string, raw []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(raw)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature against the body HMAC in constant time.
// The signature must be the lowercase hex digest exactly as Sign renders it.
// A missing secret, a malformed signature or a length mismatch all verify false.
func (h *WebhookHandler) VerifySignature(raw []byte, signature string) bool {
	if h.Secret == "" || signature == "" {
		return false
	}
	expected := Sign(h.Secret, raw)
	if len(signature) != len(expected) {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Delivery is a signed webhook body as the gateway would send it.
type Delivery struct {
	Body      []byte
	Signature string
	Event     events.Event
}

// CreateWebhookEvent signs payload with the shared secret and wraps it in the
// webhook.received event HandleWebhook would publish for it.
func (h *WebhookHandler) CreateWebhookEvent(payload any) (*Delivery, error) {
	if h.Secret == "" {
		return nil, models.NewClassifiedError(models.CodeWebhookSecretMissing, "webhook secret is not configured", nil)
	}

	var raw []byte
	switch p := payload.(type) {
	case []byte:
		raw = p
	case json.RawMessage:
		raw = p
	case string:
		raw = []byte(p)
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, models.NewClassifiedError(models.CodeWebhookPayloadInvalid, "webhook payload cannot be encoded", err)
		}
		raw = encoded
	}

	signature := Sign(h.Secret, raw)
	webhook := events.Webhook{Raw: raw, Signature: signature, Verified: true}
	if err := json.Unmarshal(raw, &webhook.Payload); err != nil {
		return nil, models.NewClassifiedError(models.CodeWebhookPayloadInvalid, "webhook payload is not a JSON object", err)
	}

	return &Delivery{
		Body:      raw,
		Signature: signature,
		Event:     events.New(events.WebhookReceived, webhook),
	}, nil
}

// HandleWebhook verifies the signature when a secret is configured, publishes
// webhook.received and awaits the callback.
func (h *WebhookHandler) HandleWebhook(ctx context.Context, raw []byte, signature string) error {
	logger := h.Logger

	verified := false
	if h.Secret != "" {
		if signature == "" {
			logger.Warn("webhook without signature rejected")
			return models.NewClassifiedError(models.CodeWebhookSignatureMissing, "webhook signature is missing", nil)
		}
		if !h.VerifySignature(raw, signature) {
			logger.Warn("webhook with invalid signature rejected")
			return models.NewClassifiedError(models.CodeWebhookSignatureInvalid, "webhook signature is invalid", nil)
		}
		verified = true
	}

	webhook := events.Webhook{Raw: bytes.Clone(raw), Signature: signature, Verified: verified}
	if err := json.Unmarshal(raw, &webhook.Payload); err != nil {
		logger.WithError(err).Warn("webhook body is not a JSON object")
	}

	if h.Bus != nil {
		h.Bus.Publish(events.New(events.WebhookReceived, webhook))
	}

	if h.Callback != nil {
		if err := h.Callback(ctx, webhook); err != nil {
			logger.WithError(err).Error("webhook callback failed")
			return models.NewClassifiedError(models.CodeWebhookCallbackError, "webhook callback failed", err)
		}
	}

	logger.WithField("verified", verified).Debug("webhook accepted")
	return nil
}
