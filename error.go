// Package xgxreport defines the minimal, composable report model used across
// xgx projects. It focuses on capturing diagnostic context once at error
// creation and rendering it consistently, while remaining perfectly
// interoperable with the Go standard library.
//
// Design tenets:
//   - Interop-first: play nicely with errors.Is/As and errors.Join.
//   - Minimal surface: no logging/persistence/retry in core.
//   - Non-mutating ergonomics: fluent builders return a new value.
//   - Capture-once: diagnostic snapshots are taken at construction and
//     adopted (never re-taken) by wrappers along the same chain.
//
// Implementations SHOULD:
//   - Keep fluent methods non-mutating (copy-on-write).
//   - Implement Unwrap() error (and optionally Unwrap() []error on join types)
//     so stdlib traversal (errors.Is/As) observes full causal chains.
//
// See: errors.Is / errors.As / errors.Join contracts in the Go standard library.
package xgxreport

// Error is the minimal, fluent, interop-friendly contract for contextful
// errors: errors that carry a report Context (diagnostic snapshots plus
// user-registered sections).
//
// All fluent methods MUST be non-mutating: they return a new Error value
// (copy-on-write) and MUST NOT alter the receiver state. This guarantees
// thread-safety for shared error values and keeps reports reproducible
// without external synchronization.
//
// The renderer consumes only the capability surface: a display-able message
// (error) plus an optional cause (Unwrap). Any error satisfies that; the
// extra methods here exist so call sites can attach sections fluently.
type Error interface {
	// error provides the canonical concise message string. The full report
	// belongs to Render / %+v, never to Error().
	error

	// Section appends a lazily-produced auxiliary block to the report, before
	// or after the main body depending on kind. The producer runs only when
	// the report is actually rendered. Returns a NEW Error.
	//
	// Example:
	//   err = err.Section(xgxreport.SectionAfter, func() string {
	//       return stderrBuf.String()
	//   })
	Section(kind SectionKind, produce func() string) Error

	// WithSection appends an after-body section rendered as a header line
	// followed by the producer's output indented underneath. The header is
	// omitted when the body turns out empty. Returns a NEW Error.
	WithSection(header string, produce func() string) Error

	// Note appends a "Note: ..." after-body line. Returns a NEW Error.
	Note(text string) Error

	// Warning appends a "Warning: ..." after-body line. Returns a NEW Error.
	Warning(text string) Error

	// Suggestion appends a "Suggestion: ..." after-body line. Returns a NEW Error.
	Suggestion(text string) Error

	// ReportContext returns the attached report context, or nil when the
	// error was constructed before hook installation (degraded mode: the
	// chain still renders, capture blocks are simply absent). Attachment is
	// monotonic: once set it is only ever read, never replaced.
	ReportContext() *Context

	// Unwrap returns the causal parent error (if any) to enable stdlib
	// traversal via errors.Is/As. Implementations that do not wrap anything
	// SHOULD return nil.
	Unwrap() error
}
