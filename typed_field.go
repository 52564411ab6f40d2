// typed_field.go — optional, type-safe accessors for span fields.
//
// Overview
//   TypedField provides an *optional* ergonomic layer for recording and
//   reading strongly-typed fields on spans. It does not replace the plain
//   variadic API (`StartSpan("op", "k", v)`) — it complements it.
//
// Goals
//   • Zero policy: purely a convenience for authors who prefer typed access.
//   • No lock-in: typed and plain fields mix freely on the same span.
//
// Usage
//
//	var (
//	    FPath    = xgxreport.TypedKey[string]("path")
//	    FAttempt = xgxreport.TypedKey[int]("attempt")
//	)
//
//	func readFile(path string) error {
//	    defer xgxreport.StartSpan("readFile", FPath.KV(path)...).End()
//	    ...
//	}
//
//	// later, inspecting a captured trace:
//	if p, ok := FPath.FromSpan(trace[0]); ok { ... }
//
// Caveats
//   • FromSpan relies on Go’s type assertions: the dynamic type recorded MUST
//     match T exactly; no implicit conversions are made.
package xgxreport

// TypedField is a small, zero-policy helper for type-safe span field access.
// T is the Go type you intend to store/retrieve for the given key.
type TypedField[T any] struct {
	key string
}

// TypedKey constructs a TypedField[T] for a given key.
// Keys SHOULD be snake_case for consistency across reports.
func TypedKey[T any](key string) TypedField[T] {
	return TypedField[T]{key: key}
}

// Key returns the underlying string key for this field.
func (f TypedField[T]) Key() string { return f.key }

// KV returns the ("key", value) pair in the shape StartSpan's variadic
// arguments expect, so typed keys compose with the plain API.
func (f TypedField[T]) KV(v T) []any { return []any{f.key, v} }

// FromSpan reads the field from a captured span. The LAST write wins when the
// key was recorded more than once. ok is false when the key is absent or the
// stored dynamic type is not exactly T.
func (f TypedField[T]) FromSpan(sp Span) (T, bool) {
	var zero T
	for i := len(sp.Fields) - 1; i >= 0; i-- {
		if sp.Fields[i].Key != f.key {
			continue
		}
		if v, ok := sp.Fields[i].Val.(T); ok {
			return v, true
		}
		return zero, false
	}
	return zero, false
}

// FromTrace reads the field from the innermost span that recorded it.
func (f TypedField[T]) FromTrace(trace SpanTrace) (T, bool) {
	for _, sp := range trace {
		if v, ok := f.FromSpan(sp); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
