// construct.go — the concrete contextful error type and its constructors.
//
// Scope (tiny core):
//   - One concrete type, reportErr, implementing the xgxreport.Error
//     interface with NON-MUTATING fluent methods.
//   - Constructors (New/Errorf/Wrap/Wrapf/fromPanicValue) that fire the
//     installed registry's factory so diagnostic capture happens exactly
//     once, at construction.
//   - Adoption: wrapping a chain that already carries a Context clones that
//     Context (copy-on-write) instead of re-capturing.
//
// Interop:
//   - errors.Is/As work via Unwrap chains (and stdlib errors.Join for
//     multi-error, in join.go).
//
// Notes:
//   - Copy-on-write everywhere: each fluent method returns a fresh value.
//   - Capture uses capture.go; the Context shape lives in context.go.
package xgxreport

import (
	"fmt"
)

// reportErr is a contextful error: a message, an optional cause, and the
// report Context attached at construction (nil when the hooks were not
// installed at the time — the chain still renders, capture blocks are
// absent).
type reportErr struct {
	msg   string
	cause error
	rctx  *Context
	panic bool // set by the fault-handler path; see IsPanic
}

func (e *reportErr) Error() string {
	if e.msg == "" {
		if e.cause != nil {
			return e.cause.Error()
		}
		return "error"
	}
	return e.msg
}

func (e *reportErr) Unwrap() error           { return e.cause }
func (e *reportErr) ReportContext() *Context { return e.rctx }

// Section appends a lazily-evaluated auxiliary block. Returns a NEW Error.
func (e *reportErr) Section(kind SectionKind, produce func() string) Error {
	return e.section(Section{Kind: kind, Produce: produce})
}

// WithSection appends a header+indented-body after-body block (the header is
// dropped when the body is empty). Returns a NEW Error.
func (e *reportErr) WithSection(header string, produce func() string) Error {
	return e.section(Section{Kind: SectionAfter, Produce: HeaderSection(header, produce)})
}

// Note appends "Note: text" after the body. Returns a NEW Error.
func (e *reportErr) Note(text string) Error { return e.section(taggedSection("Note", text)) }

// Warning appends "Warning: text" after the body. Returns a NEW Error.
func (e *reportErr) Warning(text string) Error { return e.section(taggedSection("Warning", text)) }

// Suggestion appends "Suggestion: text" after the body. Returns a NEW Error.
func (e *reportErr) Suggestion(text string) Error {
	return e.section(taggedSection("Suggestion", text))
}

// section clones the receiver and appends s to its Context. An error built
// before installation gets an empty Context here so sections still work; no
// capture is retroactively taken (capture is construction-time only).
func (e *reportErr) section(s Section) Error {
	n := e.clone()
	n.rctx = n.rctx.withSection(s) // nil-safe: clone of nil is empty
	return n
}

func (e *reportErr) clone() *reportErr {
	n := *e
	// Context is cloned lazily by section(); capture data inside is immutable
	// and safe to share.
	return &n
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// New creates a contextful error with the given message, capturing diagnostic
// context via the installed hooks (no-op when not installed).
func New(msg string) Error {
	return defaultRegistry.newError(msg, nil, 1)
}

// Errorf creates a contextful error with a formatted message.
func Errorf(format string, args ...any) Error {
	return defaultRegistry.newError(fmt.Sprintf(format, args...), nil, 1)
}

// Wrap returns a contextful error with msg as its message and err as its
// cause. If err's chain already carries a report Context it is adopted
// (cloned, not re-captured); otherwise a fresh capture is taken. Wrap(nil,
// msg) behaves like New(msg).
func Wrap(err error, msg string) Error {
	if err == nil {
		return defaultRegistry.newError(msg, nil, 1)
	}
	return defaultRegistry.newError(msg, err, 1)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) Error {
	msg := fmt.Sprintf(format, args...)
	if err == nil {
		return defaultRegistry.newError(msg, nil, 1)
	}
	return defaultRegistry.newError(msg, err, 1)
}

// newError is the factory path: it attaches an adopted or freshly-captured
// Context to a new reportErr. skip counts caller frames between the user
// call site and this function.
func (r *Registry) newError(msg string, cause error, skip int) Error {
	e := &reportErr{msg: msg, cause: cause}

	if cause != nil {
		if rc := ReportContextOf(cause); rc != nil {
			// Same failure event: adopt, never re-capture.
			e.rctx = rc.clone()
			return e
		}
	}
	if conf, ok := r.snapshot(); ok {
		e.rctx = newContext(capture(conf.captureConfig, skip+1), conf.defaultSections)
	}
	return e
}

// fromPanicValue normalizes a recovered panic value into a contextful error
// for the fault-handler path. Errors pass through Wrap semantics (adopting an
// attached Context); other values are stringified.
func (r *Registry) fromPanicValue(v any, skip int) Error {
	var e Error
	switch pv := v.(type) {
	case error:
		e = r.newError("panic", pv, skip+1)
	default:
		e = r.newError(fmt.Sprintf("panic: %v", pv), nil, skip+1)
	}
	if re, ok := e.(*reportErr); ok {
		re.panic = true // still pre-escape: the value has not been shared yet
	}
	return e
}

// Interface conformance guards.
var (
	_ Error         = (*reportErr)(nil)
	_ error         = (*reportErr)(nil)
	_ fmt.Formatter = (*reportErr)(nil)
)
