package business

import (
	"context"
	"net/http"
	"testing"

	"github.com/antinvestor/bkash-api/service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchTransaction(t *testing.T) {
	found := &models.SearchTransactionResponse{
		Result:            models.Result{StatusCode: "0000"},
		TrxID:             "TRX1",
		TransactionStatus: "Completed",
		Amount:            "100",
	}

	tests := []struct {
		name string
		call func(TransactionBusiness) (*models.SearchTransactionResponse, error)
		code string
	}{
		{
			name: "canonical",
			call: func(tb TransactionBusiness) (*models.SearchTransactionResponse, error) {
				return tb.SearchTransaction(context.Background(), models.SearchTransactionRequest{TrxID: "TRX1"})
			},
			code: models.CodeSearchError,
		},
		{
			name: "legacy positional",
			call: func(tb TransactionBusiness) (*models.SearchTransactionResponse, error) {
				return tb.SearchTransactionLegacy(context.Background(), "TRX1")
			},
			code: models.CodeSearchError,
		},
		{
			name: "status check",
			call: func(tb TransactionBusiness) (*models.SearchTransactionResponse, error) {
				return tb.CheckTransactionStatus(context.Background(), "TRX1")
			},
			code: models.CodeTransactionStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tb, err := NewTransactionBusiness(context.Background(), f.runner)
			require.NoError(t, err)

			f.client.On("SearchTransaction", mock.Anything, models.SearchTransactionRequest{TrxID: "TRX1"}, "test-token").
				Return(found, nil).Once()

			response, err := tt.call(tb)
			require.NoError(t, err)
			assert.Equal(t, found, response)
			assert.Empty(t, f.drain())
		})

		t.Run(tt.name+" failure", func(t *testing.T) {
			f := newFixture(t)
			tb, err := NewTransactionBusiness(context.Background(), f.runner)
			require.NoError(t, err)

			f.client.On("SearchTransaction", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, upstreamFailure(http.StatusInternalServerError))

			_, err = tt.call(tb)
			assert.True(t, models.HasCode(err, tt.code))
			f.client.AssertNumberOfCalls(t, "SearchTransaction", 3)
			assert.Empty(t, f.drain())
		})
	}
}

func TestSearchTransactionRequiresTrxID(t *testing.T) {
	f := newFixture(t)
	tb, err := NewTransactionBusiness(context.Background(), f.runner)
	require.NoError(t, err)

	_, err = tb.SearchTransactionLegacy(context.Background(), "")
	assert.True(t, models.HasCode(err, models.CodeSearchError))
	f.client.AssertNotCalled(t, "GrantToken", mock.Anything)
}
