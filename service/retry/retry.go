package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = time.Second
)

// Executor runs an operation up to MaxAttempts times, sleeping Delay*attempt
// after each failed attempt except the last.
type Executor struct {
	MaxAttempts int
	Delay       time.Duration
	Logger      *logrus.Entry

	// Timer drives the waits between attempts; nil uses a real timer.
	Timer backoff.Timer
}

// NewExecutor builds an executor from the client retry settings.
func NewExecutor(maxAttempts int, delay time.Duration, logger *logrus.Entry) *Executor {
	return &Executor{
		MaxAttempts: maxAttempts,
		Delay:       delay,
		Logger:      logger,
	}
}

func (e *Executor) attempts() int {
	if e == nil || e.MaxAttempts < 1 {
		return 1
	}
	return e.MaxAttempts
}

func (e *Executor) logger() *logrus.Entry {
	if e == nil || e.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return e.Logger
}

// Do runs op under the executor's policy and returns the first success or the
// last error once every attempt has failed. Cancelling ctx interrupts the wait
// between attempts and returns ctx.Err().
func Do[T any](ctx context.Context, e *Executor, operation string, op func(ctx context.Context) (T, error)) (T, error) {
	maxAttempts := e.attempts()
	logger := e.logger().WithField("operation", operation)

	var delay time.Duration
	var timer backoff.Timer
	if e != nil {
		delay = e.Delay
		timer = e.Timer
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{delay: delay}, uint64(maxAttempts-1)),
		ctx,
	)

	attempt := 0
	result, err := backoff.RetryNotifyWithTimerAndData[T](
		func() (T, error) {
			attempt++
			return op(ctx)
		},
		policy,
		func(err error, wait time.Duration) {
			logger.WithError(err).
				WithField("attempt", attempt).
				WithField("max_attempts", maxAttempts).
				WithField("retry_in", wait.String()).
				Warn("attempt failed, retrying")
		},
		timer,
	)
	if err != nil {
		logger.WithError(err).
			WithField("attempt", attempt).
			WithField("max_attempts", maxAttempts).
			Warn("attempts exhausted")
	}
	return result, err
}

// linearBackOff waits delay, 2*delay, 3*delay, ...
type linearBackOff struct {
	delay time.Duration
	n     int64
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return b.delay * time.Duration(b.n)
}

func (b *linearBackOff) Reset() {
	b.n = 0
}
