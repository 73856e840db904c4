package providers

import (
	"context"
	"sync"

	"github.com/onecloudtech/insight/internal/ai"
)

// MockProvider replays a fixed script of responses, for tests and demos
// that must not call a real model.
type MockProvider struct {
	mu        sync.Mutex
	responses []*ai.ChatResponse
	calls     []ai.ChatRequest
}

// NewMockProvider creates a provider that returns the given responses in
// order. When the script runs out it answers with a fixed closing line.
func NewMockProvider(responses ...*ai.ChatResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) SupportsTools() bool {
	return true
}

// Calls returns the requests the provider has seen, in order.
func (p *MockProvider) Calls() []ai.ChatRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ai.ChatRequest(nil), p.calls...)
}

func (p *MockProvider) Chat(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, req)

	if len(p.responses) == 0 {
		return &ai.ChatResponse{Content: "Nothing further.", FinishReason: "stop"}, nil
	}
	next := p.responses[0]
	p.responses = p.responses[1:]
	return next, nil
}
