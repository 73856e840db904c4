package mock

import (
	"fmt"
	"strings"

	"github.com/onecloudtech/insight/internal/lookup"
)

// The mock tool files historically shipped with two envelope conventions;
// neither is authoritative, so both are kept and selected by configuration.

// LegacyEnvelope presents mock data under the {code: 0, data} convention.
func LegacyEnvelope(op *lookup.Operation, query map[string]string, data interface{}) interface{} {
	return map[string]interface{}{
		"code": 0,
		"data": data,
	}
}

// UnifiedEnvelope presents mock data under the {ok, message, data}
// convention.
func UnifiedEnvelope(op *lookup.Operation, query map[string]string, data interface{}) interface{} {
	return map[string]interface{}{
		"ok":      true,
		"message": successMessage(op),
		"data":    data,
	}
}

// PresenterFor maps a configured convention name to its presenter. Unknown
// names fall back to legacy.
func PresenterFor(convention string) lookup.Presenter {
	if strings.ToLower(convention) == "unified" {
		return UnifiedEnvelope
	}
	return LegacyEnvelope
}

func successMessage(op *lookup.Operation) string {
	name := strings.ReplaceAll(op.Name, "_", " ")
	if name == "" {
		return "Mock query succeeded."
	}
	return fmt.Sprintf("%s%s succeeded.", strings.ToUpper(name[:1]), name[1:])
}
