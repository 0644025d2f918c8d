package coreapi

import (
	"context"

	"github.com/antinvestor/bkash-api/service/models"
	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of BkashApiClient.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GrantToken(ctx context.Context) (*models.TokenResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockClient) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockClient) CreatePayment(
	ctx context.Context, request models.CreatePaymentFullRequest, accessToken string,
) (*models.CreatePaymentResponse, error) {
	args := m.Called(ctx, request, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreatePaymentResponse), args.Error(1)
}

func (m *MockClient) ExecutePayment(
	ctx context.Context, request models.ExecutePaymentRequest, accessToken string,
) (*models.ExecutePaymentResponse, error) {
	args := m.Called(ctx, request, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExecutePaymentResponse), args.Error(1)
}

func (m *MockClient) PaymentStatus(
	ctx context.Context, request models.PaymentStatusRequest, accessToken string,
) (*models.PaymentStatusResponse, error) {
	args := m.Called(ctx, request, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentStatusResponse), args.Error(1)
}

func (m *MockClient) SearchTransaction(
	ctx context.Context, request models.SearchTransactionRequest, accessToken string,
) (*models.SearchTransactionResponse, error) {
	args := m.Called(ctx, request, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SearchTransactionResponse), args.Error(1)
}

func (m *MockClient) RefundTransaction(
	ctx context.Context, request models.RefundRequest, accessToken string,
) (*models.RefundResponse, error) {
	args := m.Called(ctx, request, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefundResponse), args.Error(1)
}

func (m *MockClient) RefundStatus(
	ctx context.Context, request models.RefundStatusRequest, accessToken string,
) (*models.RefundStatusResponse, error) {
	args := m.Called(ctx, request, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefundStatusResponse), args.Error(1)
}
