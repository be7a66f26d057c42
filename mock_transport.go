package sdk

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// MockTransport provides an in-memory Transport for unit tests without hitting the API.
// It records every request it receives and replies from a queue.
type MockTransport struct {
	mu       sync.Mutex
	queue    []mockReply
	requests []RecordedRequest
}

// MockTransportError is returned when a mock transport is used without configuration.
type MockTransportError struct {
	Reason string
}

func (e MockTransportError) Error() string { return "mock transport: " + e.Reason }

// RecordedRequest is a snapshot of a request seen by MockTransport.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type mockReply struct {
	status int
	header http.Header
	body   []byte
	err    error
}

// NewMockTransport creates an empty mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// WithResponse enqueues a response for the next call.
func (m *MockTransport) WithResponse(status int, body string) *MockTransport {
	m.enqueue(mockReply{status: status, header: http.Header{"Content-Type": {"application/json"}}, body: []byte(body)})
	return m
}

// WithError enqueues a transport failure for the next call.
func (m *MockTransport) WithError(err error) *MockTransport {
	m.enqueue(mockReply{err: err})
	return m
}

func (m *MockTransport) enqueue(r mockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, r)
}

// Do records req and returns the next queued reply.
func (m *MockTransport) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		body = data
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	})
	if len(m.queue) == 0 {
		return nil, MockTransportError{Reason: "no responses configured"}
	}
	reply := m.queue[0]
	m.queue = m.queue[1:]
	if reply.err != nil {
		return nil, reply.err
	}
	return &http.Response{
		StatusCode: reply.status,
		Status:     http.StatusText(reply.status),
		Header:     reply.header.Clone(),
		Body:       io.NopCloser(bytes.NewReader(reply.body)),
		Request:    req,
	}, nil
}

// Calls returns how many requests reached the transport.
func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded requests.
func (m *MockTransport) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}
