package lookup

// Found reports whether a payload counts as a hit. Nil and empty
// ordered/keyed collections are misses; every other value is a hit,
// including scalar zeros like 0, false, and "".
func Found(data interface{}) bool {
	switch v := data.(type) {
	case nil:
		return false
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	}
	return true
}

// Wrap builds the wrapped result for a live lookup. The found flag is
// authoritative: a calling agent must not re-derive it from data's shape.
func Wrap(op *Operation, query map[string]string, data interface{}) interface{} {
	return map[string]interface{}{
		"api":          op.Path,
		"query_params": query,
		"found":        Found(data),
		"data":         data,
	}
}

// Passthrough returns backend data unchanged, for hosts that want the plain
// (unwrapped) client behavior.
func Passthrough(op *Operation, query map[string]string, data interface{}) interface{} {
	return data
}
