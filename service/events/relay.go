package events

import (
	"context"
	"encoding/json"
	"errors"

	commonv1 "github.com/antinvestor/apis/go/common/v1"
	paymentV1 "github.com/antinvestor/apis/go/payment/v1"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/antinvestor/bkash-api/service/utility"
	"github.com/pitabwire/frame"
	"google.golang.org/grpc"
)

const RelayEventName = "bkash.webhook.relay"

// PaymentReceiver is the part of the payment service client the relay needs.
type PaymentReceiver interface {
	Receive(ctx context.Context, in *paymentV1.ReceiveRequest, opts ...grpc.CallOption) (*paymentV1.ReceiveResponse, error)
}

// Relay forwards completed webhook payments to the payment service.
type Relay struct {
	Service       *frame.Service
	PaymentClient PaymentReceiver
}

func (event *Relay) Name() string {
	return RelayEventName
}

func (event *Relay) PayloadType() any {
	return &models.WebhookNotification{}
}

func (event *Relay) Validate(_ context.Context, payload any) error {
	notification, ok := payload.(*models.WebhookNotification)
	if !ok {
		return errors.New("payload is not of type models.WebhookNotification")
	}
	if notification.TrxID == "" && notification.PaymentID == "" {
		return errors.New("webhook carries neither trxID nor paymentID")
	}
	return nil
}

func (event *Relay) Execute(ctx context.Context, payload any) error {
	notification := payload.(*models.WebhookNotification)

	logger := event.Service.Log(ctx).
		WithField("type", event.Name()).
		WithField("payment_id", notification.PaymentID).
		WithField("trx_id", notification.TrxID)

	if !utility.IsTransactionSuccessful(notification) {
		logger.WithField("status", notification.TransactionStatus).Debug("webhook not completed, not relayed")
		return nil
	}

	if event.PaymentClient == nil {
		return errors.New("payment client not initialized")
	}

	amount, err := utility.ParseAmount(notification.Amount)
	if err != nil {
		logger.WithError(err).Error("webhook amount unreadable")
		return err
	}

	currency := notification.Currency
	if currency == "" {
		currency = "BDT"
	}

	paymentAmount := utility.ToMoney(currency, amount)
	payment := &paymentV1.Payment{
		Source: &commonv1.ContactLink{
			Detail: notification.CustomerMsisdn,
		},
		TransactionId: notification.TrxID,
		ReferenceId:   notification.PaymentID,
		Amount:        &paymentAmount,
		Extra:         map[string]string{},
	}
	if notification.MerchantInvoiceNumber != "" {
		payment.Extra["merchant_invoice_number"] = notification.MerchantInvoiceNumber
	}
	if raw, marshalErr := json.Marshal(notification); marshalErr == nil {
		payment.Extra["additional_info"] = string(raw)
	}

	_, err = event.PaymentClient.Receive(ctx, &paymentV1.ReceiveRequest{Data: payment})
	if err != nil {
		logger.WithError(err).Error("failed to relay payment")
		return err
	}

	logger.Info("webhook payment relayed")
	return nil
}
