package sink

import "sync"

// MockSink records dispatched requests for tests and can be told to
// fail.
type MockSink struct {
	mu       sync.Mutex
	requests []Request
	err      error
}

// NewMockSink creates a new MockSink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// SetError sets the error every subsequent Dispatch returns.
func (m *MockSink) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Dispatch records the request and returns the configured error.
func (m *MockSink) Dispatch(req Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return m.err
}

// Requests returns a copy of everything dispatched so far.
func (m *MockSink) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}
