package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// InvocationEvent describes one completed tool invocation.
type InvocationEvent struct {
	Tool       string    `json:"tool"`
	DurationMS int64     `json:"duration_ms"`
	Outcome    string    `json:"outcome"` // "ok" or "error"
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// Manager registers tools and dispatches execution by name.
type Manager struct {
	tools    map[string]Tool
	order    []string
	log      zerolog.Logger
	observer func(InvocationEvent)
}

// NewManager creates an empty manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		tools: make(map[string]Tool),
		log:   log,
	}
}

// Register adds a tool. Duplicate names are rejected.
func (m *Manager) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool has no name")
	}
	if _, exists := m.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}
	m.tools[name] = t
	m.order = append(m.order, name)
	return nil
}

// SetObserver installs a callback fired after every Execute. Install before
// serving traffic; the callback runs synchronously on the calling goroutine.
func (m *Manager) SetObserver(fn func(InvocationEvent)) {
	m.observer = fn
}

// Get returns a registered tool.
func (m *Manager) Get(name string) (Tool, bool) {
	t, ok := m.tools[name]
	return t, ok
}

// All returns the tools in registration order.
func (m *Manager) All() []Tool {
	out := make([]Tool, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.tools[name])
	}
	return out
}

// Names returns tool names in registration order.
func (m *Manager) Names() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of registered tools.
func (m *Manager) Len() int { return len(m.order) }

// Execute dispatches to a tool by name, logging the call and notifying the
// observer.
func (m *Manager) Execute(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	t, ok := m.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}

	start := time.Now()
	result, err := t.Execute(ctx, args)
	elapsed := time.Since(start)

	event := InvocationEvent{
		Tool:       name,
		DurationMS: elapsed.Milliseconds(),
		Outcome:    "ok",
		At:         start,
	}
	if err != nil {
		event.Outcome = "error"
		event.Error = err.Error()
		m.log.Error().Err(err).Str("tool", name).Dur("duration", elapsed).Msg("tool failed")
	} else {
		m.log.Debug().Str("tool", name).Dur("duration", elapsed).Msg("tool executed")
	}

	if m.observer != nil {
		m.observer(event)
	}
	return result, err
}
