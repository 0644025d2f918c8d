package business

import (
	"context"

	"github.com/antinvestor/bkash-api/service/models"
)

type TransactionBusiness interface {
	CheckTransactionStatus(ctx context.Context, trxID string) (*models.SearchTransactionResponse, error)
	SearchTransaction(ctx context.Context, request models.SearchTransactionRequest) (*models.SearchTransactionResponse, error)
	SearchTransactionLegacy(ctx context.Context, trxID string) (*models.SearchTransactionResponse, error)
}

func NewTransactionBusiness(_ context.Context, runner *Runner) (TransactionBusiness, error) {
	if !runner.valid() {
		return nil, ErrorInitializationFail
	}
	return &transactionBusiness{runner: runner}, nil
}

type transactionBusiness struct {
	runner *Runner
}

func (tb *transactionBusiness) CheckTransactionStatus(
	ctx context.Context, trxID string,
) (*models.SearchTransactionResponse, error) {
	return tb.search(ctx, "transaction.status", models.CodeTransactionStatusError,
		"failed to check transaction status", models.SearchTransactionRequest{TrxID: trxID})
}

func (tb *transactionBusiness) SearchTransaction(
	ctx context.Context, request models.SearchTransactionRequest,
) (*models.SearchTransactionResponse, error) {
	return tb.search(ctx, "transaction.search", models.CodeSearchError, "failed to search transaction", request)
}

// SearchTransactionLegacy accepts the positional trxID form of SearchTransaction.
func (tb *transactionBusiness) SearchTransactionLegacy(
	ctx context.Context, trxID string,
) (*models.SearchTransactionResponse, error) {
	return tb.SearchTransaction(ctx, models.SearchTransactionRequest{TrxID: trxID})
}

func (tb *transactionBusiness) search(
	ctx context.Context, name, code, message string, request models.SearchTransactionRequest,
) (*models.SearchTransactionResponse, error) {
	return execute(ctx, tb.runner, operation[*models.SearchTransactionResponse]{
		name:    name,
		code:    code,
		message: message,
		input:   request,
		call: func(ctx context.Context, accessToken string) (*models.SearchTransactionResponse, error) {
			return tb.runner.Client.SearchTransaction(ctx, request, accessToken)
		},
	})
}
