package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// retryPolicy says how the retry decorator treats a failure.
type retryPolicy int

const (
	retryBackoff retryPolicy = iota // transient, retry with backoff
	retryOnce                       // retry a single time, then give up
	retryNever
)

type policyError interface {
	retryPolicy() retryPolicy
}

// policyOf classifies err. Unknown errors are treated as transient.
func policyOf(err error) retryPolicy {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}
	var pe policyError
	if errors.As(err, &pe) {
		return pe.retryPolicy()
	}
	return retryBackoff
}

// ErrRateLimit is a 429 from the provider. RetryAfter overrides the
// computed backoff when the provider sends it.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error            { return e.Err }
func (e *ErrRateLimit) retryPolicy() retryPolicy { return retryBackoff }

// ErrInvalidResponse means the content was not JSON or did not match the
// request schema. Content holds what the model sent.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("llm: invalid response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error            { return e.Err }
func (e *ErrInvalidResponse) retryPolicy() retryPolicy { return retryOnce }

// ErrProviderUnavailable covers network failures and 5xx responses.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return fmt.Sprintf("llm: provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error            { return e.Err }
func (e *ErrProviderUnavailable) retryPolicy() retryPolicy { return retryBackoff }

// ErrMaxTokensExceeded means a structured response was truncated and cannot
// be parsed. It is never retried.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("llm: response truncated at max tokens (%d bytes received)", len(e.Content))
}

func (e *ErrMaxTokensExceeded) retryPolicy() retryPolicy { return retryNever }
