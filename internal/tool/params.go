package tool

import (
	"fmt"
	"strings"
)

// ParseKeyValues turns console/Slack style "key=value" tokens into a tool
// argument map. Values keep their surrounding quotes stripped; a token
// without '=' is an error.
func ParseKeyValues(tokens []string) (map[string]interface{}, error) {
	args := make(map[string]interface{}, len(tokens))
	for _, tok := range tokens {
		k, v, ok := strings.Cut(tok, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q is not key=value", tok)
		}
		args[k] = strings.Trim(v, `"'`)
	}
	return args, nil
}
