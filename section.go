// section.go — user-registrable auxiliary report blocks.
//
// Sections are distinct from error messages: they carry supporting material
// (captured stderr, usage hints, bug-report URLs) displayed before or after
// the main report body. Producers are closures invoked lazily, only at render
// time, so registering a section on an error that is later handled quietly
// costs nothing but the closure allocation.
package xgxreport

import "strings"

// SectionKind places a section relative to the main report body.
type SectionKind int

const (
	// SectionBefore renders ahead of the error heading.
	SectionBefore SectionKind = iota
	// SectionAfter renders after the capture blocks.
	SectionAfter
)

// String returns the kind's stable name.
func (k SectionKind) String() string {
	switch k {
	case SectionBefore:
		return "before"
	case SectionAfter:
		return "after"
	default:
		return "unknown"
	}
}

// Section pairs a placement kind with a lazy text producer. Producers MUST be
// side-effect free with respect to the report (they may read captured state)
// and SHOULD be cheap to construct; formatting cost belongs inside the
// closure where it is paid only if the report is rendered.
type Section struct {
	Kind    SectionKind
	Produce func() string

	// tag marks the pre-configured one-line kinds (Note/Warning/Suggestion)
	// so the renderer can colorize just the leading tag.
	tag string
}

// NewSection builds a section; nil producers render as empty and are skipped.
func NewSection(kind SectionKind, produce func() string) Section {
	return Section{Kind: kind, Produce: produce}
}

// text evaluates the producer. Empty output (after trimming trailing
// whitespace) means the section is omitted from the report, so dynamic
// sections with nothing to say don't pollute the output.
func (s Section) text() string {
	if s.Produce == nil {
		return ""
	}
	return strings.TrimRight(s.Produce(), " \t\n")
}

// HeaderSection returns an after-body producer that renders a header line
// followed by the body indented one level underneath. The header is omitted
// when the body produces no output.
//
// Example:
//
//	err = err.Section(xgxreport.SectionAfter,
//	    xgxreport.HeaderSection("Stderr:", func() string { return stderr }))
func HeaderSection(header string, body func() string) func() string {
	return func() string {
		if body == nil {
			return ""
		}
		b := strings.TrimRight(body(), " \t\n")
		if b == "" {
			return ""
		}
		var sb strings.Builder
		sb.WriteString(header)
		for _, line := range strings.Split(b, "\n") {
			sb.WriteByte('\n')
			if line != "" {
				sb.WriteString(indentUnit)
				sb.WriteString(line)
			}
		}
		return sb.String()
	}
}

// taggedSection returns a producer for the pre-configured one-line kinds
// (Note/Warning/Suggestion). The tag receives the palette accent at render
// time via renderSectionText, so the producer itself stays plain text.
func taggedSection(tag, text string) Section {
	return Section{
		Kind:    SectionAfter,
		Produce: func() string { return tag + ": " + text },
		tag:     tag,
	}
}
