// Package ai defines the provider-neutral chat types used by the agent.
package ai

import "context"

// Message is one turn in a conversation. Tool results come back as role
// "tool" with ToolCallID pointing at the call they answer.
type Message struct {
	Role       string     `json:"role"` // "system", "user", "assistant", "tool"
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a model request to invoke a named tool with decoded arguments.
type ToolCall struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

// Tool describes a callable function in the JSON-schema form providers expect.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ChatRequest carries everything a provider needs for one completion.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	Tools       []Tool    `json:"tools,omitempty"`
	Model       string    `json:"model,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse is the provider's reply. ToolCalls is non-empty when the
// model wants tools run instead of (or before) answering.
type ChatResponse struct {
	Content      string     `json:"content"`
	FinishReason string     `json:"finish_reason"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
}

// StreamCallback receives content deltas during a streaming chat.
type StreamCallback func(delta string)

// Provider is the minimal surface every chat backend implements.
type Provider interface {
	Name() string
	SupportsTools() bool
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// StreamingProvider is implemented by providers that can stream content.
type StreamingProvider interface {
	Provider
	ChatStream(ctx context.Context, req ChatRequest, callback StreamCallback) (*ChatResponse, error)
}
