package shape

import "time"

// Normalize converts a decoded API value into a JSON-safe tree. Date and
// time values become RFC 3339 strings, containers are rebuilt with
// normalized elements, and every other scalar passes through unchanged.
// Total over its domain: never fails.
func Normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case *Object:
		out := NewObject()
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out.Set(k, Normalize(val))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	default:
		return v
	}
}
