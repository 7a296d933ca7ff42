package llm

import (
	"context"
	"sync"
)

// MockClient is an in-memory Client for tests. GenerateFunc decides the reply;
// every request is recorded.
type MockClient struct {
	GenerateFunc func(ctx context.Context, req Request) (*Response, error)

	mu       sync.Mutex
	requests []Request
}

func (m *MockClient) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, ErrUnavailable
}

func (m *MockClient) Close() error {
	return nil
}

// Requests returns a copy of the recorded requests.
func (m *MockClient) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of requests with the given name, or all
// requests when name is empty.
func (m *MockClient) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == "" {
		return len(m.requests)
	}
	n := 0
	for _, r := range m.requests {
		if r.Name == name {
			n++
		}
	}
	return n
}
