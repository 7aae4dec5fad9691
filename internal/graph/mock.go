package graph

import (
	"context"
	"sync"
	"time"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// MockCall records one method call on the mock client.
type MockCall struct {
	Method string
	Cypher string
	Params map[string]any
}

// MockClient is a mock implementation of Client for testing. Queued results
// are returned in FIFO order; when the queue empties the last queued result is
// repeated. All method calls are recorded for verification.
type MockClient struct {
	mu sync.Mutex

	connected    bool
	healthStatus types.HealthStatus
	calls        []MockCall

	queryResults []QueryResult
	queryErr     error
	connectErr   error
	closeErr     error
}

// NewMockClient creates a new mock graph client for testing.
func NewMockClient() *MockClient {
	return &MockClient{
		healthStatus: types.Healthy("mock graph client"),
	}
}

// QueueResult appends a result to be returned by subsequent Query calls.
func (m *MockClient) QueueResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryResults = append(m.queryResults, result)
}

// SetQueryError makes every Query call fail with err.
func (m *MockClient) SetQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryErr = err
}

// SetConnectError makes Connect fail with err.
func (m *MockClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectErr = err
}

// SetHealth overrides the reported health status.
func (m *MockClient) SetHealth(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// Calls returns a copy of the recorded calls.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// QueryCalls returns only the recorded Query calls.
func (m *MockClient) QueryCalls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MockCall
	for _, call := range m.calls {
		if call.Method == "Query" {
			out = append(out, call)
		}
	}
	return out
}

// Connect records the call and simulates connection.
func (m *MockClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "Connect"})
	if m.connectErr != nil {
		return m.connectErr
	}
	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "Close"})
	m.connected = false
	return m.closeErr
}

// Health returns the configured health status.
func (m *MockClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "Health"})
	return m.healthStatus
}

// IsConnected reports the simulated connection state.
func (m *MockClient) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Query records the call and returns the next queued result or the configured
// error.
func (m *MockClient) Query(ctx context.Context, cypher string, params map[string]any, timeout time.Duration) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Method: "Query", Cypher: cypher, Params: params})

	if m.queryErr != nil {
		return QueryResult{}, m.queryErr
	}

	if len(m.queryResults) == 0 {
		return QueryResult{Records: []map[string]any{}}, nil
	}

	result := m.queryResults[0]
	if len(m.queryResults) > 1 {
		m.queryResults = m.queryResults[1:]
	}
	return result, nil
}
