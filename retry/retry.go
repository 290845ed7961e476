// Package retry runs an operation with backoff until it succeeds, the
// attempts run out, or the context ends. Cache fetchers use it to own their
// retries: the cache engine itself never retries a fetch.
package retry

import (
	"context"
	"time"
)

// Do runs operation with retries.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	_, err := DoWithData(ctx, func() (struct{}, error) {
		return struct{}{}, operation()
	}, opts...)
	return err
}

// DoWithData runs operation with retries and returns its result.
func DoWithData[T any](ctx context.Context, operation func() (T, error), opts ...Option) (T, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var result T
	var errs []error

	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var err error
		result, err = runOne(ctx, operation, cfg.timeout)
		if err == nil {
			return result, nil
		}
		errs = append(errs, err)

		if cfg.retryIf != nil && !cfg.retryIf(err) {
			break
		}
		if attempt == cfg.maxAttempts {
			break
		}

		delay := cfg.backoff(attempt)
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}

	return result, &MultiError{Errors: errs, Attempts: len(errs)}
}

// runOne executes a single attempt, bounded by timeout when one is set.
func runOne[T any](ctx context.Context, operation func() (T, error), timeout time.Duration) (T, error) {
	if timeout <= 0 {
		return operation()
	}

	type outcome struct {
		result T
		err    error
	}

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		result, err := operation()
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-opCtx.Done():
		var zero T
		return zero, opCtx.Err()
	case out := <-done:
		return out.result, out.err
	}
}
