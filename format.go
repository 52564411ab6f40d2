// format.go — fmt.Formatter implementation for contextful errors.
//
// Behavior:
//
//	%s, %v   → concise string (Error()).
//	%+v      → the full plain report: before-body sections, heading,
//	           numbered "Caused by:" causes, "Stack backtrace:" and
//	           "Span trace:" blocks when captured, after-body sections.
//	%q       → quoted concise string.
//
// Rationale:
//   - Keep core free of I/O policy; only fmt formatting here.
//   - %+v and Render share renderReport, so the verb output and the library
//     path can never diverge. %+v is always uncolored: verb formatting has no
//     sink to probe and must stay byte-stable inside logs.
package xgxreport

import (
	"fmt"
	"io"
)

// formatConcise writes the one-line message (delegates to Error()).
func formatConcise(w io.Writer, e error) {
	// ignore write errors in formatting paths
	_, _ = io.WriteString(w, e.Error())
}

func (e *reportErr) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, renderReport(e, e.rctx, plainTheme))
			return
		}
		formatConcise(s, e)
	case 's':
		formatConcise(s, e)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		formatConcise(s, e)
	}
}
