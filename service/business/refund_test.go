package business

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/antinvestor/bkash-api/service/events"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTranslateLegacyRefund(t *testing.T) {
	tests := []struct {
		name     string
		legacy   models.LegacyRefundRequest
		expected models.RefundRequest
	}{
		{
			name:   "defaults sku and reason",
			legacy: models.LegacyRefundRequest{PaymentID: "PID", TransactionID: "TRX1", Amount: 25.5},
			expected: models.RefundRequest{
				PaymentID: "PID", TrxID: "TRX1", RefundAmount: "25.5", SKU: "LEGACY", Reason: "Customer request",
			},
		},
		{
			name: "keeps caller sku and reason",
			legacy: models.LegacyRefundRequest{
				PaymentID: "PID", TransactionID: "TRX1", Amount: 100, SKU: "SKU-9", Reason: "Damaged",
			},
			expected: models.RefundRequest{
				PaymentID: "PID", TrxID: "TRX1", RefundAmount: "100", SKU: "SKU-9", Reason: "Damaged",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TranslateLegacyRefund(tt.legacy))
		})
	}
}

func TestRefundPaymentLegacy(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		expectCode    string
		expectMessage string
	}{
		{name: "completed", status: "Completed", expectCode: "0000", expectMessage: "Successful"},
		{name: "not completed", status: "Pending", expectCode: "9999", expectMessage: "Refund not completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rb, err := NewRefundBusiness(context.Background(), f.runner)
			require.NoError(t, err)

			canonical := models.RefundRequest{
				PaymentID: "PID", TrxID: "TRX1", RefundAmount: "25.5", SKU: "LEGACY", Reason: "Customer request",
			}
			f.client.On("RefundTransaction", mock.Anything, canonical, "test-token").
				Return(&models.RefundResponse{
					OriginalTrxID:           "TRX1",
					RefundTrxID:             "RTRX1",
					RefundTransactionStatus: tt.status,
					RefundAmount:            "25.5",
					Currency:                "BDT",
				}, nil).Once()

			response, err := rb.RefundPaymentLegacy(context.Background(), models.LegacyRefundRequest{
				PaymentID: "PID", TransactionID: "TRX1", Amount: 25.5,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.expectCode, response.StatusCode)
			assert.Equal(t, tt.expectMessage, response.StatusMessage)
			assert.Equal(t, "RTRX1", response.RefundTrxID)
			assert.Equal(t, "25.5", response.Amount)
			f.client.AssertNumberOfCalls(t, "RefundTransaction", 1)

			published := f.drain()
			require.Len(t, published, 1)
			assert.Equal(t, events.RefundSuccess, published[0].Type)
		})
	}
}

func TestRefundPaymentValidation(t *testing.T) {
	tests := []struct {
		name    string
		request models.RefundRequest
		field   string
	}{
		{
			name:    "missing sku",
			request: models.RefundRequest{PaymentID: "PID", TrxID: "TRX1", RefundAmount: "10", Reason: "r"},
			field:   "sku",
		},
		{
			name:    "three decimals",
			request: models.RefundRequest{PaymentID: "PID", TrxID: "TRX1", RefundAmount: "10.001", SKU: "s", Reason: "r"},
			field:   "refundAmount",
		},
		{
			name:    "not a number",
			request: models.RefundRequest{PaymentID: "PID", TrxID: "TRX1", RefundAmount: "ten", SKU: "s", Reason: "r"},
			field:   "refundAmount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rb, err := NewRefundBusiness(context.Background(), f.runner)
			require.NoError(t, err)

			_, err = rb.RefundPayment(context.Background(), tt.request)

			var ce *models.ClassifiedError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, models.CodeRefundError, ce.Code)
			assert.Equal(t, models.KindValidation, ce.Kind)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)

			f.client.AssertNotCalled(t, "GrantToken", mock.Anything)
			assert.Empty(t, f.drain())
		})
	}
}

func TestRefundPaymentLegacyValidation(t *testing.T) {
	tests := []struct {
		name        string
		amount      float64
		expectField string
	}{
		{name: "missing amount", amount: 0, expectField: "amount"},
		{name: "three decimals", amount: 10.125, expectField: "refundAmount"},
		{name: "positive infinity", amount: math.Inf(1), expectField: "amount"},
		{name: "negative infinity", amount: math.Inf(-1), expectField: "amount"},
		{name: "not a number", amount: math.NaN(), expectField: "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rb, err := NewRefundBusiness(context.Background(), f.runner)
			require.NoError(t, err)

			var response *models.LegacyRefundResponse
			assert.NotPanics(t, func() {
				response, err = rb.RefundPaymentLegacy(context.Background(), models.LegacyRefundRequest{
					PaymentID: "PID", TransactionID: "TRX1", Amount: tt.amount,
				})
			})
			assert.Nil(t, response)
			assert.True(t, models.HasCode(err, models.CodeRefundError))

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.expectField)

			f.client.AssertNotCalled(t, "RefundTransaction", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, f.drain())
		})
	}
}

func TestRefundFailurePublishesRefundFailed(t *testing.T) {
	f := newFixture(t)
	rb, err := NewRefundBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	f.client.On("RefundTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, upstreamFailure(http.StatusOK))

	request := models.RefundRequest{
		PaymentID: "PID", TrxID: "TRX1", RefundAmount: "10", SKU: "s", Reason: "r",
	}
	_, err = rb.RefundPayment(context.Background(), request)
	assert.True(t, models.HasCode(err, models.CodeRefundError))

	published := f.drain()
	require.Len(t, published, 1)
	assert.Equal(t, events.RefundFailed, published[0].Type)
	failure := published[0].Data.(events.Failure)
	assert.Equal(t, models.CodeRefundError, failure.Code)
	assert.Equal(t, "refund.payment", failure.Operation)
	assert.Equal(t, request, failure.Input)
	assert.NotEmpty(t, failure.RequestID)
}

func TestCheckRefundStatus(t *testing.T) {
	f := newFixture(t)
	rb, err := NewRefundBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	request := models.RefundStatusRequest{PaymentID: "PID", TrxID: "TRX1"}
	f.client.On("RefundStatus", mock.Anything, request, "test-token").
		Return(&models.RefundStatusResponse{
			OriginalTrxID:      "TRX1",
			RefundTransactions: []models.RefundTransaction{{RefundTrxID: "RTRX1", RefundTransactionStatus: "Completed"}},
		}, nil)

	response, err := rb.CheckRefundStatus(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, response.RefundTransactions, 1)
	assert.Equal(t, "RTRX1", response.RefundTransactions[0].RefundTrxID)
	assert.Empty(t, f.drain())

	_, err = rb.CheckRefundStatus(context.Background(), models.RefundStatusRequest{PaymentID: "PID"})
	assert.True(t, models.HasCode(err, models.CodeRefundStatusError))
}
