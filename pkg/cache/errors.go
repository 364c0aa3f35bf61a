package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a cache backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff configures retryWithBackoff.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff is used when connecting to remote backends.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 200 * time.Millisecond}

// retryWithBackoff calls fn until it succeeds, returns a non-retryable error,
// or runs out of attempts. The delay doubles after each failure.
func retryWithBackoff(ctx context.Context, b Backoff, fn func() error) error {
	if b.Attempts < 1 {
		b.Attempts = 1
	}
	delay := b.Delay
	var lastErr error

	for i := 0; i < b.Attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < b.Attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
