package tool

import (
	"context"

	"github.com/onecloudtech/insight/internal/lookup"
)

// LookupTool exposes one catalog operation as an agent tool. Soft failures
// (missing parameters) come back as result values the model can read; hard
// failures (transport, malformed body, business errors) are Go errors the
// host presents as tool failure.
type LookupTool struct {
	BaseTool
	client *lookup.Client
	op     *lookup.Operation
}

// NewLookupTool adapts an operation to the Tool interface.
func NewLookupTool(client *lookup.Client, op *lookup.Operation) *LookupTool {
	return &LookupTool{
		BaseTool: NewBaseTool(op.Name, op.Description, schemaFor(op)),
		client:   client,
		op:       op,
	}
}

// Execute runs the lookup end to end.
func (t *LookupTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return t.client.Do(ctx, t.op, args)
}

// Operation returns the underlying catalog operation.
func (t *LookupTool) Operation() *lookup.Operation { return t.op }

// schemaFor builds the JSON schema for an operation. Any-of rules cannot be
// expressed in the schema's required list, so it stays empty for them; the
// description spells the rule out and the validator enforces it. All-of
// fields are listed as required.
func schemaFor(op *lookup.Operation) map[string]interface{} {
	properties := make(map[string]interface{}, len(op.Params))
	for _, p := range op.Params {
		properties[p.Name] = map[string]interface{}{
			"type":        "string",
			"description": p.Description,
		}
	}

	required := []string{}
	if op.Rule.Kind == lookup.AllOf {
		required = append(required, op.Rule.Fields...)
	}

	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
