package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func ok() MockResponse {
	return MockResponse{Content: json.RawMessage(`{"ok":true}`)}
}

func TestRetryCallCounts(t *testing.T) {
	invalid := MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt succeeds", []MockResponse{ok()}, false, 1},
		{"transient then success", []MockResponse{down(), ok()}, false, 2},
		{"all attempts fail", []MockResponse{down(), down(), down(), ok()}, true, 3},
		{"max tokens is not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok()}, true, 1},
		{"invalid response retried once", []MockResponse{invalid, invalid, ok()}, true, 2},
		{"rate limit honours retry after", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, ok(),
		}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, fastRetry(), 0)

			resp, err := p.Generate(context.Background(), Request{})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	mock := NewMockProvider(down(), down(), ok())
	p := WithRetry(mock, fastRetry(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryTimeoutBoundsAllAttempts(t *testing.T) {
	mock := NewMockProvider(down(), down(), ok())
	cfg := fastRetry()
	cfg.InitialWait = time.Second
	cfg.MaxWait = time.Second
	p := WithRetry(mock, cfg, 20*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(ok())
	p := WithRetry(mock, RetryConfig{}, 0)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "mock", p.ModelID())
}

func TestPolicyOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want retryPolicy
	}{
		{"plain error", errors.New("boom"), retryBackoff},
		{"unavailable", &ErrProviderUnavailable{}, retryBackoff},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, retryBackoff},
		{"wrapped invalid", fmt.Errorf("generate: %w", &ErrInvalidResponse{Err: errors.New("bad")}), retryOnce},
		{"max tokens", &ErrMaxTokensExceeded{}, retryNever},
		{"cancelled", context.Canceled, retryNever},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), retryNever},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policyOf(tt.err))
		})
	}
}
