package http

import (
	"context"
	"errors"
	"time"

	"procurement/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds the automatic retries of operations that lost a
// compare-and-swap. Every attempt reloads the order.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: 25 * time.Millisecond,
		MaxInterval:     250 * time.Millisecond,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, p.MaxRetries), ctx)
}

// retryOnConflict runs op again only after a ConcurrentModificationError.
// Any other error ends the loop at once and is returned unchanged.
func retryOnConflict[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	return backoff.RetryWithData(func() (T, error) {
		result, err := op()
		if err != nil && !errors.Is(err, errs.ErrConcurrentModification) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}, policy.backOff(ctx))
}
