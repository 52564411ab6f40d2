// join.go — report-aware multi-error join.
//
// Goals:
//   • Preserve stdlib semantics for unwrapping & default string form:
//       - Unwrap() []error for tree traversal (errors.Is/As pre-order DFS).
//       - Error() == newline-joined child Error() strings (like errors.Join).
//   • Integrate with rendering: the first child continues the primary cause
//     chain; the remaining children surface as numbered "Error N:" blocks in
//     the report (see aggregated in unwrap.go), so batched failures keep all
//     their sources visible in one report.
//
// Package note: prefer xgxreport.Join over errors.Join when the result may be
// rendered; Is/As behavior is identical due to Unwrap() []error.
package xgxreport

import (
	"fmt"
	"strings"
)

// multiErr is a rendering-aware join that mirrors errors.Join for
// Error()/Unwrap() but also implements fmt.Formatter so "%+v" produces the
// full report (primary chain + aggregated siblings).
type multiErr struct {
	errs []error // non-nil children only
}

// Error concatenates child Error() strings with newlines, identical to errors.Join.
func (m *multiErr) Error() string {
	if len(m.errs) == 0 {
		return ""
	}
	if len(m.errs) == 1 {
		return m.errs[0].Error()
	}
	sb := strings.Builder{}
	for i, e := range m.errs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Unwrap exposes the children to stdlib traversal (errors.Is/As walk pre-order).
func (m *multiErr) Unwrap() []error { return m.errs }

// Format implements fmt.Formatter.
//
//	%v, %s  → concise stdlib-compatible form (Error()).
//	%+v     → full plain report: first child's chain continues the primary
//	          chain, remaining children render as aggregated blocks.
//	%q      → quoted concise form.
func (m *multiErr) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprint(s, renderReport(m, ReportContextOf(m), plainTheme))
			return
		}
		_, _ = fmt.Fprint(s, m.Error())
	case 's':
		_, _ = fmt.Fprint(s, m.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", m.Error())
	default:
		_, _ = fmt.Fprint(s, m.Error())
	}
}

// Join returns an error wrapping the given errors, ignoring nils.
// Behavior:
//   - All nil → nil
//   - One non-nil → that error, unchanged (no pointless wrapper)
//   - Otherwise → a multiErr over the non-nil children, in argument order
func Join(errs ...error) error {
	kept := make([]error, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			kept = append(kept, e)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return &multiErr{errs: kept}
	}
}
