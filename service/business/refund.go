package business

import (
	"context"

	"github.com/antinvestor/bkash-api/service/events"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/antinvestor/bkash-api/service/utility"
)

const (
	legacyFailureCode    = "9999"
	legacyFailureMessage = "Refund not completed"
	legacySuccessMessage = "Successful"
)

type RefundBusiness interface {
	RefundPayment(ctx context.Context, request models.RefundRequest) (*models.RefundResponse, error)
	RefundPaymentLegacy(ctx context.Context, request models.LegacyRefundRequest) (*models.LegacyRefundResponse, error)
	CheckRefundStatus(ctx context.Context, request models.RefundStatusRequest) (*models.RefundStatusResponse, error)
}

func NewRefundBusiness(_ context.Context, runner *Runner) (RefundBusiness, error) {
	if !runner.valid() {
		return nil, ErrorInitializationFail
	}
	return &refundBusiness{runner: runner}, nil
}

type refundBusiness struct {
	runner *Runner
}

func (rb *refundBusiness) RefundPayment(ctx context.Context, request models.RefundRequest) (*models.RefundResponse, error) {
	return execute(ctx, rb.runner, operation[*models.RefundResponse]{
		name:    "refund.payment",
		code:    models.CodeRefundError,
		message: "failed to refund payment",
		input:   request,
		call: func(ctx context.Context, accessToken string) (*models.RefundResponse, error) {
			return rb.runner.Client.RefundTransaction(ctx, request, accessToken)
		},
		success:  events.RefundSuccess,
		failure:  events.RefundFailed,
		snapshot: copyOf[models.RefundResponse],
	})
}

// RefundPaymentLegacy translates the single-amount shape into a canonical refund
// and synthesizes the legacy response from its result.
func (rb *refundBusiness) RefundPaymentLegacy(
	ctx context.Context, request models.LegacyRefundRequest,
) (*models.LegacyRefundResponse, error) {
	if err := ValidateStruct(request); err != nil {
		rb.runner.logger().WithError(err).WithField("operation", "refund.legacy").Info("request rejected")
		return nil, models.NewClassifiedError(models.CodeRefundError, "failed to refund payment", err)
	}

	response, err := rb.RefundPayment(ctx, TranslateLegacyRefund(request))
	if err != nil {
		return nil, err
	}
	return LegacyRefundResponse(response), nil
}

func (rb *refundBusiness) CheckRefundStatus(
	ctx context.Context, request models.RefundStatusRequest,
) (*models.RefundStatusResponse, error) {
	return execute(ctx, rb.runner, operation[*models.RefundStatusResponse]{
		name:    "refund.status",
		code:    models.CodeRefundStatusError,
		message: "failed to check refund status",
		input:   request,
		call: func(ctx context.Context, accessToken string) (*models.RefundStatusResponse, error) {
			return rb.runner.Client.RefundStatus(ctx, request, accessToken)
		},
	})
}

// TranslateLegacyRefund maps the legacy refund shape onto the canonical one.
func TranslateLegacyRefund(request models.LegacyRefundRequest) models.RefundRequest {
	sku := request.SKU
	if sku == "" {
		sku = models.LegacyRefundSKU
	}
	reason := request.Reason
	if reason == "" {
		reason = models.DefaultRefundReason
	}
	return models.RefundRequest{
		PaymentID:    request.PaymentID,
		TrxID:        request.TransactionID,
		RefundAmount: utility.FloatAmount(request.Amount),
		SKU:          sku,
		Reason:       reason,
	}
}

// LegacyRefundResponse synthesizes the legacy response without another gateway call.
func LegacyRefundResponse(response *models.RefundResponse) *models.LegacyRefundResponse {
	legacy := &models.LegacyRefundResponse{
		CompletedTime:     response.CompletedTime,
		TransactionStatus: response.RefundTransactionStatus,
		OriginalTrxID:     response.OriginalTrxID,
		RefundTrxID:       response.RefundTrxID,
		Amount:            response.RefundAmount,
		Currency:          response.Currency,
	}
	if response.RefundTransactionStatus == models.RefundStatusCompleted {
		legacy.Result = models.Result{StatusCode: models.StatusCodeSuccess, StatusMessage: legacySuccessMessage}
	} else {
		legacy.Result = models.Result{StatusCode: legacyFailureCode, StatusMessage: legacyFailureMessage}
	}
	return legacy
}
