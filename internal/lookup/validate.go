package lookup

import (
	"fmt"
	"strconv"
	"strings"
)

// RuleKind selects how a required-parameter set is satisfied.
type RuleKind int

const (
	// AnyOf passes when at least one field of the set is present.
	AnyOf RuleKind = iota
	// AllOf passes only when every field of the set is present.
	AllOf
)

// Rule is an operation's required-parameter satisfaction rule.
type Rule struct {
	Kind   RuleKind
	Fields []string
}

// MissingParams is the soft validation failure handed back to the caller as
// data, so the agent can ask the user for what is missing. It is never a Go
// error and never reaches the network layer.
type MissingParams struct {
	Message string
	Fields  []string
}

// Result renders the canonical missing-parameters map.
func (m *MissingParams) Result() map[string]interface{} {
	return map[string]interface{}{
		"error":          "MISSING_REQUIRED_PARAMS",
		"message":        m.Message,
		"missing_fields": m.Fields,
	}
}

// Validate checks args against the rule. It returns nil on success. For an
// any-of rule the failure names the whole declared set (the caller may supply
// any of them); for an all-of rule it names the absent fields.
func (r Rule) Validate(args map[string]interface{}) *MissingParams {
	switch r.Kind {
	case AllOf:
		var missing []string
		for _, f := range r.Fields {
			if !argPresent(args, f) {
				missing = append(missing, f)
			}
		}
		if len(missing) == 0 {
			return nil
		}
		return &MissingParams{
			Message: fmt.Sprintf("Missing required parameter(s): %s.", strings.Join(missing, ", ")),
			Fields:  missing,
		}
	default:
		for _, f := range r.Fields {
			if argPresent(args, f) {
				return nil
			}
		}
		fields := append([]string(nil), r.Fields...)
		return &MissingParams{
			Message: fmt.Sprintf("Provide at least one of: %s.", strings.Join(fields, ", ")),
			Fields:  fields,
		}
	}
}

// argPresent reports whether an argument carries a usable value. Unset, nil,
// and blank strings all mean "not provided".
func argPresent(args map[string]interface{}, field string) bool {
	v, ok := args[field]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// argString renders an argument value for transmission. JSON numbers arrive
// as float64; whole values must not pick up an exponent form.
func argString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
