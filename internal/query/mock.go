package query

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar al endpoint real.
type MockClient struct {
	Response string
	Err      error

	mu      sync.Mutex
	queries []string
}

func (m *MockClient) Query(_ context.Context, text string) (string, error) {
	m.mu.Lock()
	m.queries = append(m.queries, text)
	m.mu.Unlock()
	return m.Response, m.Err
}

// Queries devuelve las consultas recibidas en orden.
func (m *MockClient) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}
