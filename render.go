// render.go — the pure report renderer for xgx-report.
//
// renderReport is a function of data only: (cause chain, Context, theme) →
// text. Both the library path (Render/%+v) and the fault-handler path
// (RecoverPanic) call this one function, so the two outputs can never drift
// apart.
//
// Layout:
//
//	<before-body sections, blank-line separated>
//	<heading: outermost message>
//
//	Caused by:
//	    0: first cause
//	        1: second cause (one level deeper than its parent)
//
//	Stack backtrace:
//	    0: pkg.Func (file.go:123)
//	    1: <unknown> (pc 0x40abcd)
//
//	Span trace:
//	    0: inner name k="v" (file.go:12)
//	        1: outer name (file.go:34)
//
//	<after-body sections>
//
// Determinism: the same inputs always produce byte-identical output. Color is
// purely presentational — the theme wraps individual text runs, so stripping
// ANSI escapes from colored output reproduces the plain output exactly.
package xgxreport

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// indentUnit is one indentation level in rendered reports.
const indentUnit = "    "

// theme is the fixed palette applied to a report. The zero value (nil funcs)
// renders plain text; newColorTheme forces color on regardless of the
// process-global TTY autodetection inside fatih/color, keeping output stable
// under redirection.
type theme struct {
	heading    func(...any) string // outermost message
	causeIdx   func(...any) string // "N:" under "Caused by:"
	frameIdx   func(...any) string // "N:" under "Stack backtrace:"
	spanName   func(...any) string
	sectionTag func(...any) string // "Note"/"Warning"/"Suggestion"
	header     func(...any) string // block headers
}

var plainTheme = theme{}

// newColorTheme builds the colorized palette: heading red+bold, cause indices
// cyan, frame numbers magenta, span names green, section tags cyan, block
// headers bold.
func newColorTheme() theme {
	mk := func(attrs ...color.Attribute) func(...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.Sprint
	}
	return theme{
		heading:    mk(color.FgRed, color.Bold),
		causeIdx:   mk(color.FgCyan),
		frameIdx:   mk(color.FgMagenta),
		spanName:   mk(color.FgGreen),
		sectionTag: mk(color.FgCyan),
		header:     mk(color.Bold),
	}
}

// paint applies f when the theme defines it, else returns s unchanged.
func paint(f func(...any) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// Render renders err's full report using the package-level registry's frozen
// configuration. Returns ErrNotInstalled before Install; capture failures
// never surface here (the report simply lacks the affected block).
func Render(err error) (string, error) {
	return defaultRegistry.Render(err)
}

// Render renders err's report with this registry's configuration.
func (r *Registry) Render(err error) (string, error) {
	conf, ok := r.snapshot()
	if !ok {
		return "", ErrNotInstalled
	}
	th := plainTheme
	if conf.colorEnabled() {
		th = newColorTheme()
	}
	return renderReport(err, ReportContextOf(err), th), nil
}

// renderReport is the pure core: no I/O, no global reads, deterministic.
// ctx may be nil (error constructed before install): the chain still renders,
// capture and section blocks are simply absent.
func renderReport(err error, ctx *Context, th theme) string {
	if err == nil {
		return ""
	}
	chain := Chain(err)
	sections := ctx.Sections()

	var blocks []string

	for _, s := range sections {
		if s.Kind != SectionBefore {
			continue
		}
		if txt := renderSectionText(s, th); txt != "" {
			blocks = append(blocks, txt)
		}
	}

	// A multi-error head has no message of its own beyond the join of its
	// children; its first child supplies the heading and the rest render as
	// aggregated blocks below.
	trimmed := chain
	if mu, ok := chain[0].(multiUnwrapper); ok && len(chain) > 1 && len(mu.Unwrap()) > 0 {
		trimmed = chain[1:]
	}
	// Message-less contextful shells (From promotions, span-carrier wraps)
	// delegate their display text to the cause; rendering them as chain links
	// would print the same message twice.
	display := make([]error, 0, len(trimmed))
	for _, link := range trimmed {
		if re, ok := link.(*reportErr); ok && re.msg == "" {
			continue
		}
		display = append(display, link)
	}
	if len(display) == 0 {
		display = trimmed[len(trimmed)-1:]
	}
	blocks = append(blocks, renderChain(display, th))

	cap := ctx.Capture()
	stack := cap.Stack()
	if len(stack) == 0 {
		// Degrade to an external (pkg/errors) trace carried by the chain when
		// our own capture was disabled or came back empty.
		stack = stackFromChain(err)
	}
	if len(stack) > 0 {
		blocks = append(blocks, renderStack(stack, th))
	}
	if spans := cap.SpanTrace(); len(spans) > 0 {
		blocks = append(blocks, renderSpans(spans, th))
	}

	// Aggregated siblings from multi-error nodes surface after the capture
	// blocks, before user sections.
	for i, agg := range aggregated(chain) {
		hdr := paint(th.header, fmt.Sprintf("Error %d:", i+1))
		blocks = append(blocks, hdr+"\n"+indentUnit+agg.Error())
	}

	for _, s := range sections {
		if s.Kind != SectionAfter {
			continue
		}
		if txt := renderSectionText(s, th); txt != "" {
			blocks = append(blocks, txt)
		}
	}

	return strings.Join(blocks, "\n\n")
}

// renderChain emits the heading and, for chains longer than one link, the
// numbered "Caused by:" block with each cause indented one level deeper than
// its direct parent.
func renderChain(chain []error, th theme) string {
	var sb strings.Builder
	sb.WriteString(paint(th.heading, chain[0].Error()))

	if len(chain) == 1 {
		return sb.String()
	}
	sb.WriteString("\n\n")
	sb.WriteString(paint(th.header, "Caused by:"))
	for i, cause := range chain[1:] {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(indentUnit, i+1))
		sb.WriteString(paint(th.causeIdx, fmt.Sprintf("%d:", i)))
		sb.WriteByte(' ')
		// Message text is opaque: no reflowing, no reindentation.
		sb.WriteString(cause.Error())
	}
	return sb.String()
}

// renderStack emits the backtrace block, frames numbered innermost-first.
// Unresolved frames get an explicit "<unknown>" marker with the raw PC so a
// stripped binary still yields a usable (addr2line-able) report.
func renderStack(stack Stack, th theme) string {
	var sb strings.Builder
	sb.WriteString(paint(th.header, "Stack backtrace:"))
	for i, fr := range stack {
		sb.WriteByte('\n')
		sb.WriteString(indentUnit)
		sb.WriteString(paint(th.frameIdx, fmt.Sprintf("%d:", i)))
		sb.WriteByte(' ')
		if fr.Resolved() {
			sb.WriteString(fr.Function)
			if fr.File != "" {
				fmt.Fprintf(&sb, " (%s:%d)", fr.File, fr.Line)
			}
		} else {
			fmt.Fprintf(&sb, "<unknown> (pc 0x%x)", uintptr(fr.PC))
		}
	}
	return sb.String()
}

// renderSpans emits the span-trace block, innermost span first, one extra
// indent level per nesting depth outward.
func renderSpans(spans SpanTrace, th theme) string {
	var sb strings.Builder
	sb.WriteString(paint(th.header, "Span trace:"))
	for i, sp := range spans {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(indentUnit, i+1))
		fmt.Fprintf(&sb, "%d: ", i)
		sb.WriteString(paint(th.spanName, sp.Name))
		for _, f := range sp.Fields {
			fmt.Fprintf(&sb, " %s=%q", f.Key, fmt.Sprint(f.Val))
		}
		if sp.File != "" {
			fmt.Fprintf(&sb, " (%s:%d)", sp.File, sp.Line)
		}
	}
	return sb.String()
}

// renderSectionText evaluates a section lazily and colorizes the leading tag
// of the pre-configured kinds. Empty producers yield "" and the section is
// skipped by the caller.
func renderSectionText(s Section, th theme) string {
	txt := s.text()
	if txt == "" || s.tag == "" {
		return txt
	}
	prefix := s.tag + ":"
	if rest, ok := strings.CutPrefix(txt, prefix); ok {
		return paint(th.sectionTag, prefix) + rest
	}
	return txt
}
