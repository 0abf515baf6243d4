package shared

import "strconv"

// Fields wraps a decoded JSON object so handlers can coerce loosely-typed
// admin payloads field by field. Accessors always produce a value of the
// declared type; unknown keys are simply never read.
type Fields map[string]any

// String returns the field rendered as a string, or "" when the field is
// missing or empty.
func (f Fields) String(key string) string {
	v, ok := f[key]
	if !ok || !truthy(v) {
		return ""
	}
	return stringify(v)
}

// OptString returns nil when the field is missing or empty, so callers can
// distinguish "leave unchanged" from "set".
func (f Fields) OptString(key string) *string {
	v, ok := f[key]
	if !ok || !truthy(v) {
		return nil
	}
	s := stringify(v)
	return &s
}

// Int returns the field when it is a JSON number, otherwise def.
func (f Fields) Int(key string, def int) int {
	if n, ok := f[key].(float64); ok {
		return int(n)
	}
	return def
}

// OptInt returns nil unless the field is a JSON number.
func (f Fields) OptInt(key string) *int {
	if n, ok := f[key].(float64); ok {
		i := int(n)
		return &i
	}
	return nil
}

// CoerceID parses a record id from a path parameter. Non-numeric input
// coerces to 0, which matches no row.
func CoerceID(raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
