package business

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/antinvestor/bkash-api/service/coreapi"
	"github.com/antinvestor/bkash-api/service/events"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment(t *testing.T) {
	f := newFixture(t)
	pb, err := NewPaymentBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	expected := models.CreatePaymentFullRequest{CreatePaymentRequest: validPayment()}
	expected.Mode = models.DefaultCheckoutMode

	created := &models.CreatePaymentResponse{
		Result:            models.Result{StatusCode: models.StatusCodeSuccess, StatusMessage: "Successful"},
		PaymentID:         "PID",
		BkashURL:          "https://sandbox.payment.bkash.com/?paymentId=PID",
		TransactionStatus: "Initiated",
	}
	f.client.On("CreatePayment", mock.Anything, expected, "test-token").Return(created, nil).Once()

	response, err := pb.CreatePayment(context.Background(), validPayment())
	require.NoError(t, err)
	assert.Equal(t, "PID", response.PaymentID)

	// The caller owns the response; the published event must not see this.
	response.PaymentID = "CHANGED-BY-CALLER"

	published := f.drain()
	require.Len(t, published, 1)
	assert.Equal(t, events.PaymentCreated, published[0].Type)
	data, ok := published[0].Data.(models.CreatePaymentResponse)
	require.True(t, ok)
	assert.Equal(t, "PID", data.PaymentID)
	assert.Equal(t, "Initiated", data.TransactionStatus)

	f.client.AssertExpectations(t)
	f.client.AssertNumberOfCalls(t, "GrantToken", 1)
}

func TestCreatePaymentExhaustionPublishesOneFailure(t *testing.T) {
	f := newFixture(t)
	pb, err := NewPaymentBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	f.client.On("CreatePayment", mock.Anything, mock.Anything, "test-token").
		Return(nil, upstreamFailure(http.StatusServiceUnavailable))

	response, err := pb.CreatePayment(context.Background(), validPayment())
	require.Error(t, err)
	assert.Nil(t, response)

	var ce *models.ClassifiedError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, models.CodePaymentCreateError, ce.Code)
	assert.Equal(t, models.KindTransport, ce.Kind)
	assert.Equal(t, map[string]any{"errorCode": "503", "errorMessage": "System is undergoing maintenance"}, ce.Details)

	var te *coreapi.TransportError
	assert.True(t, errors.As(err, &te))

	f.client.AssertNumberOfCalls(t, "CreatePayment", 3)

	published := f.drain()
	require.Len(t, published, 1)
	assert.Equal(t, events.PaymentFailed, published[0].Type)
	failure, ok := published[0].Data.(events.Failure)
	require.True(t, ok)
	assert.Equal(t, models.CodePaymentCreateError, failure.Code)
	assert.Equal(t, "payment.create", failure.Operation)
	assert.NotEmpty(t, failure.RequestID)
}

func TestCreatePaymentValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreatePaymentRequest)
		field  string
	}{
		{name: "three decimals", mutate: func(r *models.CreatePaymentRequest) { r.Amount = "10.555" }, field: "amount"},
		{name: "negative amount", mutate: func(r *models.CreatePaymentRequest) { r.Amount = "-5" }, field: "amount"},
		{name: "missing invoice", mutate: func(r *models.CreatePaymentRequest) { r.MerchantInvoiceNumber = "" }, field: "merchantInvoiceNumber"},
		{name: "bad currency", mutate: func(r *models.CreatePaymentRequest) { r.Currency = "USD" }, field: "currency"},
		{name: "bad mode", mutate: func(r *models.CreatePaymentRequest) { r.Mode = "9999" }, field: "mode"},
		{name: "bad callback", mutate: func(r *models.CreatePaymentRequest) { r.CallbackURL = "not a url" }, field: "callbackURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			pb, err := NewPaymentBusiness(context.Background(), f.runner)
			require.NoError(t, err)

			request := validPayment()
			tt.mutate(&request)

			_, err = pb.CreatePayment(context.Background(), request)
			require.Error(t, err)

			var ce *models.ClassifiedError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, models.CodePaymentCreateError, ce.Code)
			assert.Equal(t, models.KindValidation, ce.Kind)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)

			f.client.AssertNotCalled(t, "GrantToken", mock.Anything)
			f.client.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, f.drain())
		})
	}
}

func TestExecutePayment(t *testing.T) {
	f := newFixture(t)
	pb, err := NewPaymentBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	executed := &models.ExecutePaymentResponse{
		Result:            models.Result{StatusCode: models.StatusCodeSuccess},
		PaymentID:         "PID",
		TrxID:             "TRX1",
		TransactionStatus: "Completed",
	}
	f.client.On("ExecutePayment", mock.Anything, models.ExecutePaymentRequest{PaymentID: "PID"}, "test-token").
		Return(nil, upstreamFailure(http.StatusBadGateway)).Once()
	f.client.On("ExecutePayment", mock.Anything, models.ExecutePaymentRequest{PaymentID: "PID"}, "test-token").
		Return(executed, nil).Once()

	response, err := pb.ExecutePayment(context.Background(), "PID")
	require.NoError(t, err)
	assert.Equal(t, "TRX1", response.TrxID)

	published := f.drain()
	require.Len(t, published, 1)
	assert.Equal(t, events.PaymentSuccess, published[0].Type)
	f.client.AssertNumberOfCalls(t, "ExecutePayment", 2)
}

func TestExecutePaymentRequiresID(t *testing.T) {
	f := newFixture(t)
	pb, err := NewPaymentBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	_, err = pb.ExecutePayment(context.Background(), "")
	assert.True(t, models.HasCode(err, models.CodePaymentExecuteError))
	assert.Empty(t, f.drain())
}

func TestPaymentStatusOperations(t *testing.T) {
	tests := []struct {
		name string
		call func(PaymentBusiness) (*models.PaymentStatusResponse, error)
		code string
	}{
		{
			name: "verify",
			call: func(pb PaymentBusiness) (*models.PaymentStatusResponse, error) {
				return pb.VerifyPayment(context.Background(), "PID")
			},
			code: models.CodePaymentVerifyError,
		},
		{
			name: "query",
			call: func(pb PaymentBusiness) (*models.PaymentStatusResponse, error) {
				return pb.QueryPayment(context.Background(), "PID")
			},
			code: models.CodePaymentQueryError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" success", func(t *testing.T) {
			f := newFixture(t)
			pb, err := NewPaymentBusiness(context.Background(), f.runner)
			require.NoError(t, err)

			f.client.On("PaymentStatus", mock.Anything, models.PaymentStatusRequest{PaymentID: "PID"}, "test-token").
				Return(&models.PaymentStatusResponse{
					Result: models.Result{StatusCode: "0000"}, PaymentID: "PID", TransactionStatus: "Completed",
				}, nil)

			response, err := tt.call(pb)
			require.NoError(t, err)
			assert.Equal(t, "Completed", response.TransactionStatus)
			assert.Empty(t, f.drain())
		})

		t.Run(tt.name+" failure", func(t *testing.T) {
			f := newFixture(t)
			pb, err := NewPaymentBusiness(context.Background(), f.runner)
			require.NoError(t, err)

			f.client.On("PaymentStatus", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, upstreamFailure(http.StatusInternalServerError))

			_, err = tt.call(pb)
			assert.True(t, models.HasCode(err, tt.code))
			assert.Empty(t, f.drain())
		})
	}
}

func TestUnauthorizedClearsToken(t *testing.T) {
	f := newFixture(t)
	pb, err := NewPaymentBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	f.client.On("PaymentStatus", mock.Anything, mock.Anything, "test-token").
		Return(nil, &coreapi.TransportError{StatusCode: http.StatusUnauthorized}).Once()
	f.client.On("PaymentStatus", mock.Anything, mock.Anything, "test-token").
		Return(&models.PaymentStatusResponse{Result: models.Result{StatusCode: "0000"}}, nil).Once()

	_, err = pb.QueryPayment(context.Background(), "PID")
	require.NoError(t, err)

	f.client.AssertNumberOfCalls(t, "GrantToken", 2)
	f.client.AssertNumberOfCalls(t, "PaymentStatus", 2)
}

func TestTokenFailureSurfacesUnderOperationCode(t *testing.T) {
	f := newFixture(t)
	f.client.ExpectedCalls = nil
	f.client.On("GrantToken", mock.Anything).Return(nil, upstreamFailure(http.StatusUnauthorized))

	pb, err := NewPaymentBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	_, err = pb.ExecutePayment(context.Background(), "PID")
	require.Error(t, err)

	var ce *models.ClassifiedError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, models.CodePaymentExecuteError, ce.Code)
	assert.True(t, models.HasCode(ce.Cause, models.CodeTokenError))
	f.client.AssertNotCalled(t, "ExecutePayment", mock.Anything, mock.Anything, mock.Anything)

	published := f.drain()
	require.Len(t, published, 1)
	assert.Equal(t, events.PaymentFailed, published[0].Type)
}
