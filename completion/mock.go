package completion

import (
	"context"
	"sync"
)

// MockClient is a scriptable Client for tests.
// It records every request and replays configured responses.
type MockClient struct {
	mu sync.Mutex

	// Calls records every request received, in order.
	Calls []Request

	fixed     string
	responses []string
	respIdx   int

	err       error
	failErr   error
	failCount int

	fn func(req Request) (string, error)
}

// NewMockClient creates a mock that always returns the given content.
func NewMockClient(content string) *MockClient {
	return &MockClient{fixed: content}
}

// WithResponses makes the mock cycle through the given responses in order.
func (m *MockClient) WithResponses(responses ...string) *MockClient {
	m.responses = responses
	return m
}

// WithError makes every call fail with err.
func (m *MockClient) WithError(err error) *MockClient {
	m.err = err
	return m
}

// WithFailures makes the first n calls fail with err, then succeed.
func (m *MockClient) WithFailures(n int, err error) *MockClient {
	m.failCount = n
	m.failErr = err
	return m
}

// WithResponseFunc routes every request through fn, overriding all other
// scripted behavior.
func (m *MockClient) WithResponseFunc(fn func(req Request) (string, error)) *MockClient {
	m.fn = fn
	return m
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)

	if m.fn != nil {
		fn := m.fn
		m.mu.Unlock()
		content, err := fn(req)
		if err != nil {
			return nil, err
		}
		return m.response(content), nil
	}

	if m.failCount > 0 {
		m.failCount--
		err := m.failErr
		m.mu.Unlock()
		return nil, err
	}
	if m.err != nil {
		err := m.err
		m.mu.Unlock()
		return nil, err
	}

	content := m.fixed
	if len(m.responses) > 0 {
		content = m.responses[m.respIdx%len(m.responses)]
		m.respIdx++
	}
	m.mu.Unlock()

	return m.response(content), nil
}

// response builds a canned successful response.
func (m *MockClient) response(content string) *Response {
	return &Response{
		Content:      content,
		Model:        "mock",
		FinishReason: "stop",
		Usage: TokenUsage{
			InputTokens:  len(content) / 4,
			OutputTokens: len(content) / 4,
			TotalTokens:  len(content) / 2,
		},
	}
}

// CallCount returns the number of calls received.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or nil if none were made.
func (m *MockClient) LastCall() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	req := m.Calls[len(m.Calls)-1]
	return &req
}
