// Package tool gives every surface (chat agent, MCP, gateway, console,
// Slack) one registry of callable lookups with a shared execution path.
package tool

import "context"

// Tool is one invocable lookup as the hosting surfaces see it: a name the
// model calls it by, a description and JSON schema to advertise, and the
// execution itself.
type Tool interface {
	Name() string
	Description() string

	// Parameters returns the JSON schema for the tool's arguments.
	Parameters() map[string]interface{}

	// Execute runs the tool. Results the model should read (including soft
	// failures) come back as the value; only hard failures are errors.
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// BaseTool carries the static metadata, so concrete tools only implement
// Execute. Embed it by value; it is immutable after construction.
type BaseTool struct {
	name        string
	description string
	parameters  map[string]interface{}
}

// NewBaseTool builds the metadata carrier.
func NewBaseTool(name, description string, parameters map[string]interface{}) BaseTool {
	return BaseTool{
		name:        name,
		description: description,
		parameters:  parameters,
	}
}

func (t BaseTool) Name() string { return t.name }

func (t BaseTool) Description() string { return t.description }

func (t BaseTool) Parameters() map[string]interface{} { return t.parameters }
