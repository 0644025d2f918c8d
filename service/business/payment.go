package business

import (
	"context"

	"github.com/antinvestor/bkash-api/service/events"
	"github.com/antinvestor/bkash-api/service/models"
)

type PaymentBusiness interface {
	CreatePayment(ctx context.Context, request models.CreatePaymentRequest) (*models.CreatePaymentResponse, error)
	CreatePaymentFull(ctx context.Context, request models.CreatePaymentFullRequest) (*models.CreatePaymentResponse, error)
	ExecutePayment(ctx context.Context, paymentID string) (*models.ExecutePaymentResponse, error)
	VerifyPayment(ctx context.Context, paymentID string) (*models.PaymentStatusResponse, error)
	QueryPayment(ctx context.Context, paymentID string) (*models.PaymentStatusResponse, error)
}

func NewPaymentBusiness(_ context.Context, runner *Runner) (PaymentBusiness, error) {
	if !runner.valid() {
		return nil, ErrorInitializationFail
	}
	return &paymentBusiness{runner: runner}, nil
}

type paymentBusiness struct {
	runner *Runner
}

func (pb *paymentBusiness) CreatePayment(
	ctx context.Context,
	request models.CreatePaymentRequest,
) (*models.CreatePaymentResponse, error) {
	return pb.CreatePaymentFull(ctx, models.CreatePaymentFullRequest{CreatePaymentRequest: request})
}

// CreatePaymentFull creates a checkout, defaulting the mode to tokenized checkout.
func (pb *paymentBusiness) CreatePaymentFull(
	ctx context.Context,
	request models.CreatePaymentFullRequest,
) (*models.CreatePaymentResponse, error) {
	if request.Mode == "" {
		request.Mode = models.DefaultCheckoutMode
	}

	return execute(ctx, pb.runner, operation[*models.CreatePaymentResponse]{
		name:    "payment.create",
		code:    models.CodePaymentCreateError,
		message: "failed to create payment",
		input:   request,
		call: func(ctx context.Context, accessToken string) (*models.CreatePaymentResponse, error) {
			return pb.runner.Client.CreatePayment(ctx, request, accessToken)
		},
		success:  events.PaymentCreated,
		failure:  events.PaymentFailed,
		snapshot: copyOf[models.CreatePaymentResponse],
	})
}

func (pb *paymentBusiness) ExecutePayment(ctx context.Context, paymentID string) (*models.ExecutePaymentResponse, error) {
	request := models.ExecutePaymentRequest{PaymentID: paymentID}

	return execute(ctx, pb.runner, operation[*models.ExecutePaymentResponse]{
		name:    "payment.execute",
		code:    models.CodePaymentExecuteError,
		message: "failed to execute payment",
		input:   request,
		call: func(ctx context.Context, accessToken string) (*models.ExecutePaymentResponse, error) {
			return pb.runner.Client.ExecutePayment(ctx, request, accessToken)
		},
		success:  events.PaymentSuccess,
		failure:  events.PaymentFailed,
		snapshot: copyOf[models.ExecutePaymentResponse],
	})
}

func (pb *paymentBusiness) VerifyPayment(ctx context.Context, paymentID string) (*models.PaymentStatusResponse, error) {
	return pb.paymentStatus(ctx, "payment.verify", models.CodePaymentVerifyError, "failed to verify payment", paymentID)
}

func (pb *paymentBusiness) QueryPayment(ctx context.Context, paymentID string) (*models.PaymentStatusResponse, error) {
	return pb.paymentStatus(ctx, "payment.query", models.CodePaymentQueryError, "failed to query payment", paymentID)
}

func (pb *paymentBusiness) paymentStatus(
	ctx context.Context, name, code, message, paymentID string,
) (*models.PaymentStatusResponse, error) {
	request := models.PaymentStatusRequest{PaymentID: paymentID}

	return execute(ctx, pb.runner, operation[*models.PaymentStatusResponse]{
		name:    name,
		code:    code,
		message: message,
		input:   request,
		call: func(ctx context.Context, accessToken string) (*models.PaymentStatusResponse, error) {
			return pb.runner.Client.PaymentStatus(ctx, request, accessToken)
		},
	})
}
