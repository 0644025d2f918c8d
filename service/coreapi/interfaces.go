package coreapi

import (
	"context"

	"github.com/antinvestor/bkash-api/service/models"
)

//nolint:revive // BkashApiClient follows the existing integration naming convention
type BkashApiClient interface {
	GrantToken(ctx context.Context) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	CreatePayment(ctx context.Context, request models.CreatePaymentFullRequest, accessToken string) (*models.CreatePaymentResponse, error)
	ExecutePayment(ctx context.Context, request models.ExecutePaymentRequest, accessToken string) (*models.ExecutePaymentResponse, error)
	PaymentStatus(ctx context.Context, request models.PaymentStatusRequest, accessToken string) (*models.PaymentStatusResponse, error)
	SearchTransaction(ctx context.Context, request models.SearchTransactionRequest, accessToken string) (*models.SearchTransactionResponse, error)
	RefundTransaction(ctx context.Context, request models.RefundRequest, accessToken string) (*models.RefundResponse, error)
	RefundStatus(ctx context.Context, request models.RefundStatusRequest, accessToken string) (*models.RefundStatusResponse, error)
}
