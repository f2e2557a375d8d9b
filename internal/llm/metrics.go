package llm

import (
	"context"
	"time"
)

// MetricsRecorder receives one observation per provider call.
type MetricsRecorder interface {
	ObserveLLMRequest(purpose string, success bool, latency time.Duration)
}

// MetricsProvider reports call outcome and latency to a MetricsRecorder.
type MetricsProvider struct {
	inner    Provider
	recorder MetricsRecorder
}

// WithMetrics wraps a Provider with call metrics.
func WithMetrics(p Provider, r MetricsRecorder) Provider {
	return &MetricsProvider{inner: p, recorder: r}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := m.inner.Generate(ctx, req)
	m.recorder.ObserveLLMRequest(PurposeFrom(ctx), err == nil, time.Since(start))
	return resp, err
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}
