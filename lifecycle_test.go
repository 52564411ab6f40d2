// lifecycle_test.go — the package-level default registry, exercised as one
// ordered sequence because installation is a one-way, process-wide
// transition. Every other test in this package uses isolated registries.
package xgxreport

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultRegistry_Lifecycle(t *testing.T) {
	// NOT parallel: this test owns the package-level registry transition.

	// 1. Construction before install degrades to a context-free error.
	early := New("too early")
	if early.ReportContext() != nil {
		t.Fatalf("pre-install construction attached a context")
	}

	// 2. Rendering before install is a distinct programming error.
	if _, err := Render(early); !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("pre-install render error = %v, want ErrNotInstalled", err)
	}

	// 3. First install wins.
	if err := NewHookBuilder().CaptureSpanTrace(false).Color(ColorNever).Install(); err != nil {
		t.Fatalf("first install: %v", err)
	}

	// 4. Second install is a configuration error, not an overwrite.
	if err := Install(); !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("second install error = %v, want ErrAlreadyInstalled", err)
	}

	// 5. Post-install constructors attach contexts and the chain renders.
	err := Wrap(Errorf("step %d failed", 2), "pipeline aborted")
	if err.ReportContext() == nil {
		t.Fatalf("post-install construction missing context")
	}
	text, rerr := Render(err)
	if rerr != nil {
		t.Fatalf("render: %v", rerr)
	}
	if !strings.HasPrefix(text, "pipeline aborted") || !strings.Contains(text, "0: step 2 failed") {
		t.Fatalf("unexpected report:\n%s", text)
	}

	// 6. Wrap(nil, msg) behaves like New.
	if got := Wrap(nil, "fresh").Error(); got != "fresh" {
		t.Fatalf("Wrap(nil) = %q", got)
	}
	if got := Wrapf(nil, "fresh %s", "too").Error(); got != "fresh too" {
		t.Fatalf("Wrapf(nil) = %q", got)
	}
}
