// wrap.go — tiny, stdlib-friendly helpers that operate on arbitrary errors.
//
// Purpose
//   - Apply xgxreport's fluent section builders to ANY error value, not just
//     the package's own contextful type.
//   - Preserve perfect interop with the Go standard library (errors.Is/As
//     keep traversing the original chain).
//   - Stay policy-free: no logging/persistence opinions here.
//
// Background
//   - Go’s error traversal hinges on Unwrap forms: Unwrap() error and, since
//     Go 1.20, Unwrap() []error. Promotion here wraps foreign errors in a
//     contextful shell with the foreign error as cause, so Is/As still reach
//     the original value.
package xgxreport

// From converts any error into an xgxreport.Error without adding capture.
//   - nil → nil (contrast Wrap(nil, msg) which creates a fresh error)
//   - xgxreport.Error → returned as-is
//   - other error → wrapped as a contextful shell adopting any Context found
//     along the chain; no fresh capture is taken here (callers opt in via Wrap)
func From(err error) Error {
	if err == nil {
		return nil
	}
	if re, ok := err.(Error); ok {
		return re
	}
	e := &reportErr{cause: err}
	if rc := ReportContextOf(err); rc != nil {
		e.rctx = rc.clone()
	}
	return e
}

// AddSection appends a lazy section to any error immutably, promoting foreign
// errors first. Nil errors return nil.
func AddSection(err error, kind SectionKind, produce func() string) Error {
	if err == nil {
		return nil
	}
	return From(err).Section(kind, produce)
}

// Note appends "Note: text" to any error's report. Nil-safe.
func Note(err error, text string) Error {
	if err == nil {
		return nil
	}
	return From(err).Note(text)
}

// Warning appends "Warning: text" to any error's report. Nil-safe.
func Warning(err error, text string) Error {
	if err == nil {
		return nil
	}
	return From(err).Warning(text)
}

// Suggestion appends "Suggestion: text" to any error's report. Nil-safe.
func Suggestion(err error, text string) Error {
	if err == nil {
		return nil
	}
	return From(err).Suggestion(text)
}

// WithSection appends a header+indented-body after-body block to any error's
// report (header dropped when the body is empty). Nil-safe.
func WithSection(err error, header string, produce func() string) Error {
	if err == nil {
		return nil
	}
	return From(err).WithSection(header, produce)
}
