// Package attrs reads values back out of slog-style key/value argument lists.
package attrs

// Lookup returns the first value stored under key that has type T.
func Lookup[T any](kv []any, key string) (T, bool) {
	var zero T
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); !ok || k != key {
			continue
		}
		if v, ok := kv[i+1].(T); ok {
			return v, true
		}
	}
	return zero, false
}

// ExtractString returns the string under key, or "" when absent.
func ExtractString(kv []any, key string) string {
	v, _ := Lookup[string](kv, key)
	return v
}
