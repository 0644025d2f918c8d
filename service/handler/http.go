package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/antinvestor/bkash-api/service/models"
	"github.com/pitabwire/frame"
)

const maxWebhookBody = 1 << 20

// WebhookProcessor accepts one raw webhook delivery.
type WebhookProcessor interface {
	HandleWebhook(ctx context.Context, raw []byte, signature string) error
}

type JobServer struct {
	Service  *frame.Service
	Webhooks WebhookProcessor
}

func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (js *JobServer) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := js.Service.Log(ctx).WithField("type", "WebhookHandler")

	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.WithField("limit", tooLarge.Limit).Warn("webhook body too large")
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		logger.WithError(err).Error("failed to read webhook body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err = js.Webhooks.HandleWebhook(ctx, raw, r.Header.Get(SignatureHeader))
	if err != nil {
		var ce *models.ClassifiedError
		status := http.StatusInternalServerError
		if errors.As(err, &ce) &&
			(ce.Code == models.CodeWebhookSignatureMissing || ce.Code == models.CodeWebhookSignatureInvalid) {
			status = http.StatusUnauthorized
		}
		logger.WithError(err).Error("failed to process webhook")
		http.Error(w, "Failed to process webhook", status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": "Webhook received successfully",
	}); err != nil {
		logger.WithError(err).Error("failed to encode success response")
	}
}
