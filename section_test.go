// section_test.go — verification of section ordering, lazy evaluation, and
// the header/tagged helpers.
package xgxreport

import (
	"strings"
	"testing"
)

func TestSections_ProducersAreLazy(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := NewHookBuilder().CaptureSpanTrace(false).Color(ColorNever).InstallTo(r); err != nil {
		t.Fatalf("install: %v", err)
	}

	evals := 0
	e := r.newError("lazy", nil, 0).Section(SectionAfter, func() string {
		evals++
		return "evaluated"
	})
	if evals != 0 {
		t.Fatalf("producer ran at registration time (%d evals)", evals)
	}

	text, err := r.Render(e)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if evals != 1 || !strings.Contains(text, "evaluated") {
		t.Fatalf("producer evals after render = %d, output %q", evals, text)
	}
}

func TestSections_OrderingIsRegistrationOrderWithinKind(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := NewHookBuilder().CaptureSpanTrace(false).Color(ColorNever).InstallTo(r); err != nil {
		t.Fatalf("install: %v", err)
	}

	e := r.newError("ordering", nil, 0).
		Section(SectionAfter, func() string { return "after-1" }).
		Section(SectionBefore, func() string { return "before-1" }).
		Section(SectionAfter, func() string { return "after-2" }).
		Section(SectionBefore, func() string { return "before-2" })

	text, err := r.Render(e)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	order := []string{"before-1", "before-2", "ordering", "after-1", "after-2"}
	last := -1
	for _, want := range order {
		idx := strings.Index(text, want)
		if idx < 0 {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
		if idx < last {
			t.Fatalf("%q out of order:\n%s", want, text)
		}
		last = idx
	}
}

func TestSections_EmptyProducerOmitted(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := NewHookBuilder().CaptureSpanTrace(false).Color(ColorNever).InstallTo(r); err != nil {
		t.Fatalf("install: %v", err)
	}

	e := r.newError("sparse", nil, 0).
		Section(SectionAfter, func() string { return "" }).
		Section(SectionAfter, nil)

	text, err := r.Render(e)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if text != "sparse" {
		t.Fatalf("empty sections leaked into output: %q", text)
	}
}

func TestHeaderSection_IndentsBodyAndDropsEmptyHeader(t *testing.T) {
	t.Parallel()

	t.Run("body indented under header", func(t *testing.T) {
		got := HeaderSection("Stderr:", func() string { return "line one\nline two\n" })()
		want := "Stderr:\n" + indentUnit + "line one\n" + indentUnit + "line two"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
	t.Run("empty body drops the header", func(t *testing.T) {
		if got := HeaderSection("Stdout:", func() string { return "  \n" })(); got != "" {
			t.Fatalf("got %q, want empty", got)
		}
	})
	t.Run("nil body drops the header", func(t *testing.T) {
		if got := HeaderSection("Stdout:", nil)(); got != "" {
			t.Fatalf("got %q, want empty", got)
		}
	})
}

func TestTaggedSections_RenderWithPrefix(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := NewHookBuilder().CaptureSpanTrace(false).Color(ColorNever).InstallTo(r); err != nil {
		t.Fatalf("install: %v", err)
	}

	e := r.newError("tagged", nil, 0).
		Note("check the manual").
		Warning("disk nearly full").
		Suggestion("try again with --force")

	text, err := r.Render(e)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Note: check the manual",
		"Warning: disk nearly full",
		"Suggestion: try again with --force",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestSectionKind_String(t *testing.T) {
	t.Parallel()

	if SectionBefore.String() != "before" || SectionAfter.String() != "after" {
		t.Fatalf("kind names changed")
	}
	if SectionKind(99).String() != "unknown" {
		t.Fatalf("unknown kind name changed")
	}
}
