// stack_test.go — verification of stack capture semantics and pkg/errors
// trace extraction.
package xgxreport

import (
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

// --- Helpers to build a known call chain -------------------------------------

func stackGrab(skipExtra int) Stack {
	return captureStackDefault(skipExtra + 1)
}

func stackTestLevel2(skipExtra int) Stack {
	// First recorded frame with skipExtra=0 should be this function.
	return stackGrab(skipExtra)
}

func stackTestLevel1(skipExtra int) Stack {
	// With skipExtra=1, first recorded frame should be THIS function (caller of level2).
	return stackTestLevel2(skipExtra)
}

// --- Tests -------------------------------------------------------------------

func TestCaptureStack_UsesDefaultWhenMaxDepthZero(t *testing.T) {
	t.Parallel()

	s := captureStack(0, 0) // maxDepth<=0 → defaultMaxDepth
	if len(s) == 0 {
		t.Fatalf("expected non-empty stack when maxDepth=0 (default), got 0")
	}
	if len(s) > defaultMaxDepth {
		t.Fatalf("stack length exceeds defaultMaxDepth: len=%d default=%d", len(s), defaultMaxDepth)
	}
}

func TestCaptureStack_RespectsMaxDepthLimit(t *testing.T) {
	t.Parallel()

	const limit = 3
	s := captureStack(0, limit)
	if len(s) == 0 {
		t.Fatalf("expected some frames with small limit; got 0")
	}
	if len(s) > limit {
		t.Fatalf("expected <= %d frames; got %d", limit, len(s))
	}
}

func TestCaptureStack_SkipPlacesFirstFrameAtCaller(t *testing.T) {
	t.Parallel()

	s := stackTestLevel2(0)
	if len(s) == 0 {
		t.Fatalf("expected frames")
	}
	if !strings.Contains(s[0].Function, "stackTestLevel2") {
		t.Fatalf("first frame = %q, want stackTestLevel2", s[0].Function)
	}

	s = stackTestLevel1(1)
	if !strings.Contains(s[0].Function, "stackTestLevel1") {
		t.Fatalf("first frame with extra skip = %q, want stackTestLevel1", s[0].Function)
	}
}

func TestCaptureStack_FramesResolve(t *testing.T) {
	t.Parallel()

	s := captureStackDefault(0)
	if len(s) == 0 {
		t.Fatalf("expected frames")
	}
	fr := s[0]
	if !fr.Resolved() || fr.File == "" || fr.Line == 0 || fr.PC == 0 {
		t.Fatalf("first frame under-resolved: %#v", fr)
	}
}

func TestFrame_ResolvedMarker(t *testing.T) {
	t.Parallel()

	if (Frame{PC: 0x42}).Resolved() {
		t.Fatalf("frame with no function should be unresolved")
	}
	if !(Frame{Function: "pkg.Fn"}).Resolved() {
		t.Fatalf("frame with function should be resolved")
	}
}

func TestStackFromChain_LiftsDeepestExternalTrace(t *testing.T) {
	t.Parallel()

	root := pkgerrors.New("root with trace")
	mid := pkgerrors.Wrap(root, "mid with trace")
	outer := &reportErr{msg: "outer", cause: mid}

	s := stackFromChain(outer)
	if len(s) == 0 {
		t.Fatalf("expected lifted frames from pkg/errors chain")
	}
	// The deepest trace belongs to root, created inside THIS test function.
	if !strings.Contains(s[0].Function, "TestStackFromChain_LiftsDeepestExternalTrace") {
		t.Fatalf("first lifted frame = %q, want this test function", s[0].Function)
	}
}

func TestStackFromChain_NilWhenNoExternalTrace(t *testing.T) {
	t.Parallel()

	outer := &reportErr{msg: "plain"}
	if s := stackFromChain(outer); s != nil {
		t.Fatalf("expected nil stack, got %d frames", len(s))
	}
}
