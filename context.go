// context.go — the immutable report context attached to contextful errors,
// plus the ordered key-value machinery shared with span fields.
//
// Design:
//   • Internal kv representation: append-only []Field (deterministic order).
//   • Builders are non-mutating: return NEW slices (no aliasing).
//   • Context is created exactly once per triggering event by the installed
//     factory, then only read; section appends clone (copy-on-write).
//
// Rationale:
//   • Go map iteration order is unspecified; slice preserves insertion order,
//     which the renderer needs for byte-stable output.
//   • Slice append may re-use capacity; we always allocate a fresh slice when
//     “mutating” to ensure copy-on-write semantics for safety.
package xgxreport

// Field represents a single key-value pair recorded on a span.
// Keys SHOULD be snake_case for consistency, but the core does not enforce it.
type Field struct {
	Key string
	Val any
}

// fields is the internal immutable representation of ordered key-values.
// Treat it as append-only; never modify elements in place once published.
type fields []Field

// emptyFields is a canonical empty field list.
var emptyFields = make(fields, 0)

// ctxCloneAppend returns a NEW slice with dst's contents followed by add.
// It always allocates a fresh backing array to avoid aliasing via append.
func ctxCloneAppend(dst fields, add ...Field) fields {
	n := len(dst)
	m := len(add)
	if m == 0 {
		if n == 0 {
			return emptyFields
		}
		out := make(fields, n)
		copy(out, dst)
		return out
	}
	out := make(fields, n+m)
	copy(out, dst)
	copy(out[n:], add)
	return out
}

// ctxFromKV parses a variadic list of key-value arguments into fields.
//
// Rules (normative):
//   - Pairs are read left-to-right as (key, value).
//   - Keys MUST be strings; a non-string “key” causes the ENTIRE PAIR to be
//     dropped (the key and its following value, if any). This avoids
//     misalignment where a value becomes the next pair’s key.
//   - A trailing key with no value becomes (key, nil).
func ctxFromKV(kv ...any) fields {
	if len(kv) == 0 {
		return emptyFields
	}
	out := make(fields, 0, len(kv)/2+1)
	for i := 0; i < len(kv); {
		k, ok := kv[i].(string)
		if !ok {
			if i+1 < len(kv) {
				i += 2
			} else {
				i++
			}
			continue
		}
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
			i += 2
		} else {
			// Trailing key with no value → nil
			i++
		}
		out = append(out, Field{Key: k, Val: v})
	}
	if len(out) == 0 {
		return emptyFields
	}
	return out
}

// ctxToMap creates a NEW map from fields (copy-on-read).
// Later duplicate keys overwrite earlier ones (last-write-wins).
func ctxToMap(fs fields) map[string]any {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Val
	}
	return m
}

// -----------------------------------------------------------------------------
// Context
// -----------------------------------------------------------------------------

// Context is the diagnostic payload attached to a single contextful error:
// one Capture result plus the ordered user-registered sections. It is created
// exactly once (by the installed registry's factory, at error construction)
// and never mutated afterwards; section appends go through clone().
//
// The owning error holds its Context for the error's lifetime. Wrapping an
// error that already carries a Context clones it rather than re-capturing, so
// the expensive snapshot work happens once per failure event.
type Context struct {
	cap      Capture
	sections []Section
}

// newContext packages a capture result and a copy of the default sections.
// The defaults slice is copy-attached so later appends on one error never
// leak into siblings created from the same registry.
func newContext(cap Capture, defaults []Section) *Context {
	c := &Context{cap: cap}
	if len(defaults) > 0 {
		c.sections = make([]Section, len(defaults))
		copy(c.sections, defaults)
	}
	return c
}

// Capture returns the diagnostic snapshot taken when the owning error was
// created. The zero Capture (nothing taken) is returned for a nil Context.
func (c *Context) Capture() Capture {
	if c == nil {
		return Capture{}
	}
	return c.cap
}

// Sections returns a defensive copy of the registered sections in
// registration order (both kinds interleaved as registered).
func (c *Context) Sections() []Section {
	if c == nil || len(c.sections) == 0 {
		return nil
	}
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// withSection returns a NEW Context with s appended. Producers are stored as
// given and invoked only at render time.
func (c *Context) withSection(s Section) *Context {
	n := c.clone()
	n.sections = append(n.sections, s)
	return n
}

// clone returns a fresh Context sharing the immutable capture data but owning
// its own section slice.
func (c *Context) clone() *Context {
	if c == nil {
		return &Context{}
	}
	n := &Context{cap: c.cap}
	if len(c.sections) > 0 {
		n.sections = make([]Section, 0, len(c.sections)+1)
		n.sections = append(n.sections, c.sections...)
	}
	return n
}
