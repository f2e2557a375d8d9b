package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newRetry returns a RetryProvider that records waits instead of sleeping.
func newRetry(inner Provider, log *zap.Logger) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := WithRetry(inner, RetryConfig{
		MaxAttempts: 3,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}, log).(*RetryProvider)
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return r, &waits
}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Status: http.StatusServiceUnavailable, Err: errors.New("down")}}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(down(), MockResponse{Text: "ok"})
	p, waits := newRetry(mock, nil)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, mock.CallCount())
	require.Len(t, *waits, 1)
	assert.InDelta(t, 100*time.Millisecond, (*waits)[0], float64(20*time.Millisecond))
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(down(), down(), down(), MockResponse{Text: "never"})
	p, waits := newRetry(mock, nil)

	_, err := p.Generate(context.Background(), Request{})
	var un *ErrProviderUnavailable
	require.ErrorAs(t, err, &un)
	assert.Equal(t, 3, mock.CallCount())
	assert.Len(t, *waits, 2)
}

func TestRetry_NotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"truncated", &ErrMaxTokensExceeded{}},
		{"client error", &ErrProviderUnavailable{Status: http.StatusUnauthorized, Err: errors.New("bad key")}},
		{"deadline", context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, MockResponse{Text: "ok"})
			p, _ := newRetry(mock, nil)

			_, err := p.Generate(context.Background(), Request{})
			require.Error(t, err)
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestRetry_InvalidResponseRepeatedOnce(t *testing.T) {
	invalid := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}}
	mock := NewMockProvider(invalid, invalid, MockResponse{Text: "ok"})
	p, _ := newRetry(mock, nil)

	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_RateLimitWaitsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 7 * time.Second, Err: errors.New("slow down")}},
		MockResponse{Text: "ok"},
	)
	p, waits := newRetry(mock, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{7 * time.Second}, *waits)
}

func TestRetry_StopsWhenContextEnds(t *testing.T) {
	mock := NewMockProvider(down(), MockResponse{Text: "ok"})
	p, _ := newRetry(mock, nil)
	p.sleep = sleepCtx

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_LogsEachRepeat(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mock := NewMockProvider(down(), MockResponse{Text: "ok"})
	p, _ := newRetry(mock, zap.New(core))

	_, err := p.Generate(WithPurpose(context.Background(), PurposeQuiz), Request{})
	require.NoError(t, err)

	entries := logs.FilterMessage("retrying llm request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, PurposeQuiz, fields["purpose"])
	assert.Equal(t, "unavailable", fields["kind"])
}

func TestRetryDelay_GrowsAndCaps(t *testing.T) {
	cfg := RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}
	err := errors.New("x")

	assert.InDelta(t, 200*time.Millisecond, cfg.delay(2, err), float64(40*time.Millisecond))
	assert.LessOrEqual(t, int64(cfg.delay(5, err)), int64(360*time.Millisecond))
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p, _ := newRetry(NewMockProvider(), nil)
	assert.Equal(t, "mock", p.ModelID())
}
