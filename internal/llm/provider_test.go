package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first", Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Text: "second", Stop: StopMaxTokens},
	)
	ctx := context.Background()

	r1, err := mock.Generate(ctx, Ask("sys", "one", 100, 0))
	require.NoError(t, err)
	assert.Equal(t, "first", r1.Text)
	assert.Equal(t, 15, r1.Usage.TotalTokens)
	assert.Equal(t, StopEnd, r1.StopReason)

	r2, err := mock.Generate(ctx, Ask("sys", "two", 100, 0))
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, r2.StopReason)

	last, ok := mock.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "two", last.Messages[0].Content)
	assert.Equal(t, RoleUser, last.Messages[0].Role)

	_, err = mock.Generate(ctx, Request{})
	var un *ErrProviderUnavailable
	assert.ErrorAs(t, err, &un)
	assert.Equal(t, 3, mock.CallCount())
}

func TestMockProvider_ScriptedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestMockProvider_ChecksSchema(t *testing.T) {
	schema := &Schema{Name: "mock-check", Definition: map[string]any{
		"type":     "object",
		"required": []any{"trend"},
	}}
	mock := NewMockProvider(MockResponse{Text: `{"other":1}`}, MockResponse{Text: `{"trend":"up"}`})

	_, err := mock.Generate(context.Background(), Request{Schema: schema})
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)

	resp, err := mock.Generate(context.Background(), Request{Schema: schema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"trend":"up"}`, string(resp.JSON()))
}

func TestPurpose(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "unknown", PurposeFrom(WithPurpose(ctx, "")))
	assert.Equal(t, PurposeCurriculum, PurposeFrom(WithPurpose(ctx, PurposeCurriculum)))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: ProviderConfig{APIKey: "g"}}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: ProviderConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"nothing selected", Config{}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() = %v", err)
		})
	}
}

func TestConfig_ResolveOrder(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
		ok   bool
	}{
		{"none", Config{}, "", false},
		{"gemini first", Config{Gemini: ProviderConfig{APIKey: "g"}, OpenAI: ProviderConfig{APIKey: "o"}}, ProviderGemini, true},
		{"openai before anthropic", Config{OpenAI: ProviderConfig{APIKey: "o"}, Anthropic: ProviderConfig{APIKey: "a"}}, ProviderOpenAI, true},
		{"openrouter last", Config{OpenRouter: ProviderConfig{APIKey: "r"}}, ProviderOpenRouter, true},
		{"explicit without key", Config{Provider: ProviderAnthropic}, ProviderAnthropic, false},
		{"explicit mock", Config{Provider: ProviderMock}, ProviderMock, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			assert.Equal(t, tt.ok, cfg.Resolve())
			assert.Equal(t, tt.want, cfg.Provider)
		})
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestTimeout_CancelsSlowCall(t *testing.T) {
	p := WithTimeout(slowProvider{}, 5*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "slow", p.ModelID())
}

type observation struct {
	purpose string
	success bool
}

type fakeMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeMetrics) ObserveLLMRequest(purpose string, success bool, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{purpose, success})
}

func TestMetrics_RecordsOutcome(t *testing.T) {
	m := &fakeMetrics{}
	p := WithMetrics(NewMockProvider(MockResponse{Text: "ok"}), m)
	ctx := WithPurpose(context.Background(), PurposeQuiz)

	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	assert.Equal(t, []observation{{PurposeQuiz, true}, {PurposeQuiz, false}}, m.obs)
}

type fakeEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeEvents) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	f.events = append(f.events, d)
	return f.err
}

func TestLogging_RecordsRequestAndResponse(t *testing.T) {
	ev := &fakeEvents{}
	mock := NewMockProvider(MockResponse{Text: "Maps store key/value pairs.", Usage: Usage{InputTokens: 3, OutputTokens: 4}})
	p := WithLogging(mock, ProviderGemini, ev, nil)
	ctx := WithPurpose(context.Background(), PurposeLesson)

	resp, err := p.Generate(ctx, Ask("sys", "explain maps", 100, 0))
	require.NoError(t, err)
	assert.Equal(t, "Maps store key/value pairs.", resp.Text)

	require.Len(t, ev.events, 1)
	e := ev.events[0]
	assert.Equal(t, ProviderGemini, e.Provider)
	assert.Equal(t, "mock", e.Model)
	assert.Equal(t, PurposeLesson, e.Purpose)
	assert.True(t, e.Success)
	assert.Equal(t, 3, e.InputTokens)
	assert.Equal(t, "[system]\nsys\n\n[user]\nexplain maps\n\n", e.RequestBody)
}

func TestLogging_RecordsFailureKind(t *testing.T) {
	ev := &fakeEvents{}
	p := WithLogging(NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("quota")}}), ProviderOpenAI, ev, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	require.Len(t, ev.events, 1)
	assert.False(t, ev.events[0].Success)
	assert.Contains(t, ev.events[0].ErrorMessage, "[rate_limited]")
}

func TestLogging_EventFailureDoesNotFailRequest(t *testing.T) {
	ev := &fakeEvents{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "x"}), ProviderMock, ev, nil)

	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "nope"}, Deps{})
	assert.Error(t, err)

	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, Deps{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}
