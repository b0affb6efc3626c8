package grader

import (
	"context"
	"sync"
)

// MockClient is an AIClient for tests: it records prompts and returns
// scripted replies in order, repeating the last one when exhausted.
type MockClient struct {
	mu      sync.Mutex
	Replies []string
	Err     error
	Prompts []string
	calls   int
}

// Complete implements AIClient.
func (m *MockClient) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Replies) == 0 {
		return "", nil
	}
	i := m.calls
	if i >= len(m.Replies) {
		i = len(m.Replies) - 1
	}
	m.calls++
	return m.Replies[i], nil
}
