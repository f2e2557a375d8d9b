package llm

import (
	"context"
	"sync"
)

// MockResponse is one scripted reply of a MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
	// Stop defaults to StopEnd.
	Stop string
}

// MockProvider replays scripted replies in order and records every request.
// Scripted text goes through the same schema check as a real provider's.
// With nothing left to replay it reports the service as unavailable, which
// makes a bare NewMockProvider() a provider that always fails.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []Request
}

// NewMockProvider scripts the given replies.
func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	stop := r.Stop
	if stop == "" {
		stop = StopEnd
	}
	return complete(req, r.Text, stop, r.Usage, "mock")
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse scripts one more reply.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// CallCount returns the number of requests seen.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastRequest returns the most recent request, or false before the first.
func (m *MockProvider) LastRequest() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
