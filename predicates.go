// predicates.go — minimal, stdlib-aligned predicates over cause chains.
//
// Scope:
//   • Zero-policy helpers that answer common questions about an error's
//     attached report context.
//   • Interop-first: traversal rides Chain (unwrap.go), which follows both
//     single Unwrap() error and the primary child of Unwrap() []error, with
//     cycle and depth guards.
package xgxreport

// contextCarrier matches any error exposing an attached report Context; the
// package-local reportErr is the usual implementor, but external wrappers may
// provide the method too.
type contextCarrier interface {
	ReportContext() *Context
}

// HasReportContext reports whether any error along err's chain carries a
// non-nil report Context.
func HasReportContext(err error) bool {
	return ReportContextOf(err) != nil
}

// ReportContextOf returns the FIRST non-nil report Context along err's
// primary chain (outermost wins: it adopted or superseded the inner ones),
// or nil. Traversal is cycle-safe via Chain.
func ReportContextOf(err error) *Context {
	for _, link := range Chain(err) {
		if cc, ok := link.(contextCarrier); ok {
			if rc := cc.ReportContext(); rc != nil {
				return rc
			}
		}
	}
	return nil
}

// StackOf returns the stack snapshot attached to err's chain, falling back
// to an external pkg/errors-style trace when no capture is attached. Nil when
// neither exists.
func StackOf(err error) Stack {
	if rc := ReportContextOf(err); rc != nil {
		if s := rc.Capture().Stack(); len(s) > 0 {
			return s
		}
	}
	return stackFromChain(err)
}

// SpanTraceOf returns the span trace attached to err's chain, or nil.
func SpanTraceOf(err error) SpanTrace {
	if rc := ReportContextOf(err); rc != nil {
		return rc.Capture().SpanTrace()
	}
	return nil
}

// IsPanic reports whether any error along err's primary chain originated
// from the fault-handler path (a recovered panic normalized into a
// contextful error).
func IsPanic(err error) bool {
	for _, link := range Chain(err) {
		if re, ok := link.(*reportErr); ok && re.panic {
			return true
		}
	}
	return false
}
