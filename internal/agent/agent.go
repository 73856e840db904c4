// Package agent runs the tool-calling conversation loop: user input goes
// to the model, tool calls are dispatched to the lookup tools, and their
// results feed the next model turn until the model answers in plain text.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/onecloudtech/insight/internal/ai"
	"github.com/onecloudtech/insight/internal/tool"
)

const systemPrompt = `You are Insight, an investigation assistant for authorized analysts.
You answer questions about persons of interest using the lookup tools.
Quote identifiers exactly as the user gave them. A result with "found": false
means the backend holds no records for that query. A result with
"error": "MISSING_REQUIRED_PARAMS" tells you which identifiers to ask the
user for. Never invent fields that are not present in a tool result.`

// Agent represents an AI agent that can execute lookup tools and continue
// the conversation with their results.
type Agent struct {
	provider ai.Provider
	manager  *tool.Manager
	session  *Session
	maxSteps int
	log      zerolog.Logger
}

// Config for creating a new Agent
type Config struct {
	Provider  ai.Provider
	Manager   *tool.Manager
	Session   *Session // optional; a new session is created when nil
	SessionID string
	MaxSteps  int
	Logger    zerolog.Logger
}

// NewAgent creates a new agent with the given configuration
func NewAgent(cfg Config) *Agent {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 8
	}

	session := cfg.Session
	if session == nil {
		session = NewSession(cfg.SessionID)
	}
	if len(session.GetMessages()) == 0 {
		session.AddMessage(ai.Message{Role: "system", Content: systemPrompt})
	}

	return &Agent{
		provider: cfg.Provider,
		manager:  cfg.Manager,
		session:  session,
		maxSteps: cfg.MaxSteps,
		log:      cfg.Logger,
	}
}

// Run executes a user request with automatic tool chaining and conversation
// continuation until the model produces a plain answer.
func (a *Agent) Run(ctx context.Context, userInput string) (string, error) {
	a.session.AddMessage(ai.Message{
		Role:    "user",
		Content: userInput,
	})

	for step := 0; step < a.maxSteps; step++ {
		a.log.Debug().Int("step", step+1).Msg("agent step")

		resp, err := a.getAIResponse(ctx)
		if err != nil {
			return "", fmt.Errorf("AI response failed: %w", err)
		}

		// If no tool calls, we're done
		if len(resp.ToolCalls) == 0 {
			a.session.AddMessage(ai.Message{
				Role:    "assistant",
				Content: resp.Content,
			})
			return resp.Content, nil
		}

		// Record the assistant turn first so every tool message can refer
		// back to its call id.
		a.session.AddMessage(ai.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		a.log.Debug().Int("calls", len(resp.ToolCalls)).Msg("executing tool calls")
		for _, call := range resp.ToolCalls {
			a.session.AddMessage(ai.Message{
				Role:       "tool",
				Content:    a.executeToolCall(ctx, call),
				ToolCallID: call.ID,
			})
		}
	}

	return "", fmt.Errorf("exceeded maximum steps (%d)", a.maxSteps)
}

// executeToolCall runs one tool call and renders its result as the tool
// message content. Lookup failures become error text the model can relay.
func (a *Agent) executeToolCall(ctx context.Context, call ai.ToolCall) string {
	result, err := a.manager.Execute(ctx, call.Name, call.Args)
	if err != nil {
		return fmt.Sprintf("Error executing %s: %v", call.Name, err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("Error encoding %s result: %v", call.Name, err)
	}
	return string(encoded)
}

// getAIResponse gets a response from the AI provider with current session messages
func (a *Agent) getAIResponse(ctx context.Context) (*ai.ChatResponse, error) {
	req := ai.ChatRequest{
		Messages:    a.session.GetMessages(),
		Tools:       a.getToolDefinitions(),
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	return a.provider.Chat(ctx, req)
}

// getToolDefinitions converts the registered tools to AI tool definitions
func (a *Agent) getToolDefinitions() []ai.Tool {
	defs := make([]ai.Tool, 0, a.manager.Len())
	for _, t := range a.manager.All() {
		defs = append(defs, ai.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// GetSession returns the agent's session
func (a *Agent) GetSession() *Session {
	return a.session
}
