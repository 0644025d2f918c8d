package business

import (
	"context"
	"errors"

	"github.com/antinvestor/bkash-api/service/coreapi"
	"github.com/antinvestor/bkash-api/service/events"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/antinvestor/bkash-api/service/retry"
	"github.com/antinvestor/bkash-api/service/token"
	"github.com/sirupsen/logrus"
)

// Runner carries the infrastructure every gateway operation goes through.
type Runner struct {
	Client   coreapi.BkashApiClient
	Tokens   *token.Manager
	Executor *retry.Executor
	Bus      *events.Bus
	Logger   *logrus.Entry
}

func (r *Runner) valid() bool {
	return r != nil && r.Client != nil && r.Tokens != nil && r.Bus != nil
}

func (r *Runner) logger() *logrus.Entry {
	if r.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return r.Logger
}

// operation describes one authenticated gateway call.
type operation[T any] struct {
	name    string
	code    string
	message string
	input   any

	call func(ctx context.Context, accessToken string) (T, error)

	// Mutating operations publish these; read-only ones leave them empty.
	success events.Type
	failure events.Type

	// snapshot copies the result into the success event so subscribers never
	// share memory with the value returned to the caller.
	snapshot func(T) any
}

// copyOf is the snapshot for flat response structs.
func copyOf[R any](result *R) any {
	if result == nil {
		return nil
	}
	return *result
}

// execute validates the input, then runs token acquisition and exactly one
// gateway call per attempt under the retry policy. Exhaustion publishes the
// failure event and returns a ClassifiedError with the operation code.
func execute[T any](ctx context.Context, r *Runner, op operation[T]) (T, error) {
	var zero T

	rc := newRequestContext(op.name, op.input)
	logger := r.logger().
		WithField("operation", rc.Operation).
		WithField("request_id", rc.RequestID)

	if err := ValidateStruct(rc.Input); err != nil {
		logger.WithError(err).Info("request rejected")
		return zero, models.NewClassifiedError(op.code, op.message, err)
	}

	result, err := retry.Do(ctx, r.Executor, op.name, func(ctx context.Context) (T, error) {
		accessToken, tokenErr := r.Tokens.GetToken(ctx)
		if tokenErr != nil {
			return zero, tokenErr
		}
		response, callErr := op.call(ctx, accessToken)
		if callErr != nil {
			var te *coreapi.TransportError
			if errors.As(callErr, &te) && te.Unauthorized() {
				if clearErr := r.Tokens.ClearToken(ctx); clearErr != nil {
					logger.WithError(clearErr).Warn("failed to clear rejected token")
				}
			}
			return zero, callErr
		}
		return response, nil
	})
	if err != nil {
		ce := models.NewClassifiedError(op.code, op.message, err)
		logger.WithError(err).WithField("code", ce.Code).Error("operation failed")

		if op.failure != "" {
			r.Bus.Publish(events.New(op.failure, events.Failure{
				RequestID: rc.RequestID,
				Operation: rc.Operation,
				Code:      ce.Code,
				Message:   ce.Message,
				Details:   ce.Details,
				Input:     rc.Input,
			}))
		}
		return zero, ce
	}

	if op.success != "" && op.snapshot != nil {
		r.Bus.Publish(events.New(op.success, op.snapshot(result)))
	}
	logger.Debug("operation succeeded")
	return result, nil
}
