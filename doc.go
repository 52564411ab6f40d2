// doc.go — package documentation for xgx-report
//
// Package xgxreport is an error-report capture and formatting engine: it
// snapshots diagnostic context (call stack, active span trace) exactly once
// when an error is created, attaches that context to the error value, and
// later renders the full cause chain plus the captured context into one
// consistent, optionally colorized, multi-section text report. It is designed
// to be:
//   - Ergonomic at call sites (install once, construct errors as usual)
//   - Interoperable with the stdlib (errors.Is/As/Unwrap, fmt.Formatter)
//   - Policy-free (no logging/persistence/retry rules in core)
//
// # Installation
//
// The capture hooks are installed once per process, early in main:
//
//	func main() {
//	    if err := xgxreport.Install(); err != nil {
//	        // already installed, or bad configuration
//	    }
//	    defer xgxreport.RecoverPanic()
//	    ...
//	}
//
// Install freezes the configuration for the process lifetime. A second call
// returns ErrAlreadyInstalled and leaves the first configuration untouched.
// Custom configuration goes through the builder:
//
//	err := xgxreport.NewHookBuilder().
//	    CaptureStack(true).
//	    Color(xgxreport.ColorNever).
//	    AddSection(xgxreport.SectionAfter, func() string {
//	        return "Please report bugs to https://xgx.io/bugs"
//	    }).
//	    Install()
//
// # Report layout
//
// A rendered report stacks, in order: before-body sections, the outermost
// error message as heading, a "Caused by:" block with each cause numbered
// from 0 and indented one level deeper than its parent, a "Stack backtrace:"
// block (frames numbered innermost-first, unresolved frames marked rather
// than dropped), a "Span trace:" block (innermost span first, one indent
// level per nesting depth), and finally after-body sections:
//
//	failed to read config
//
//	Caused by:
//	    0: open settings.toml
//	        1: file not found
//
//	Stack backtrace:
//	    0: app.readConfig (config.go:41)
//	    1: app.main (main.go:12)
//
//	Span trace:
//	    0: readFile path="settings.toml" (config.go:38)
//	        1: readConfig (config.go:40)
//
//	Suggestion: try using a file that exists next time
//
// Rendering is deterministic: the same (chain, context, color) triple always
// yields byte-identical text, and stripping ANSI escapes from colorized
// output reproduces the plain output exactly.
//
// # Capture semantics
//
// Capture runs exactly once per triggering event. New/Errorf capture at
// construction; Wrap/Wrapf adopt the context already attached to the cause
// chain (copy-on-write) instead of re-capturing. Disabled capture is recorded
// as an explicit "absent" marker, distinct from "captured but empty", so the
// renderer can omit the corresponding block outright. Collaborator failures
// degrade the block to whatever partial data was obtained; they never
// propagate.
//
// # Environment overrides
//
// Three variables are resolved once, at Install time, and win over the
// builder's compiled-in values when set and parseable:
//
//	XGX_BACKTRACE  0|1   enable stack capture (default off)
//	XGX_SPANTRACE  0|1   enable span-trace capture (default on)
//	XGX_COLOR      always|never|auto   (default auto: TTY detection)
//
// # Formatting verbs
//
// Contextful errors implement fmt.Formatter:
//
//	%s, %v   → concise one-line message (Error()).
//	%+v      → the full plain (uncolored) report.
//	%q       → quoted concise message.
package xgxreport
