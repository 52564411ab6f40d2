// stack.go — call-stack snapshots for xgx-report.
//
// Design goals:
//   - Interop & correctness: use runtime.Callers + runtime.CallersFrames for
//     accurate frame resolution (handles inlining correctly).
//   - Partial data over no data: unresolved frames are kept (with their PCs)
//     rather than discarded; the renderer marks them explicitly.
//   - External stacks: causes wrapped with github.com/pkg/errors carry their
//     own trace; we can lift it into our Frame shape so a chain that crossed
//     a pkg/errors boundary still reports a backtrace.
//
// References:
//   - runtime.Callers / CallersFrames docs and example
//   - Prefer CallersFrames over FuncForPC for inlined frames
//   - Callers skip semantics (0 = Callers, 1 = its caller)
package xgxreport

import (
	"runtime"

	pkgerrors "github.com/pkg/errors"
)

// Frame represents a single call site in a stack snapshot.
type Frame struct {
	PC       uintptr // program counter of the call return
	File     string  // absolute file path (as provided by runtime)
	Line     int     // line number
	Function string  // fully-qualified function name; empty when unresolved
}

// Resolved reports whether symbolication produced a function name for this
// frame. Unresolved frames still carry their PC and are rendered with an
// explicit marker instead of being dropped.
func (f Frame) Resolved() bool { return f.Function != "" }

// Stack is a slice of Frames from most recent call outward. A nil Stack means
// "no frames"; whether that is "capture disabled" or "captured but empty" is
// recorded separately on Capture.
type Stack []Frame

// StackCapturer is the stack-unwind collaborator: it walks the calling
// goroutine's stack, skipping 'skip' caller frames beyond itself. It is
// swappable via HookBuilder.StackCapturer; the default uses runtime.Callers.
type StackCapturer func(skip int) Stack

const (
	// defaultMaxDepth is a conservative bound that captures meaningful
	// context without excessive work on exceptional paths.
	defaultMaxDepth = 64
)

// captureStackDefault captures a stack skipping 'skip' frames, with a
// conservative default depth bound.
//
// Skip model for a typical call chain:
//
//	New → factory → capture → captureStackDefault → captureStack → runtime.Callers
//
// The skip parameter here is *additional* to the internal helpers. Internally
// we ensure user-visible stacks begin at (or very near) the user call site by
// adding +3 in captureStack (to skip runtime.Callers, captureStack, and
// captureStackDefault). Any extra 'skip' provided by callers is applied on top.
func captureStackDefault(skip int) Stack {
	return captureStack(skip, defaultMaxDepth)
}

// captureStack captures up to maxDepth frames, skipping 'skip' initial frames.
// It returns a resolved Stack with file, line, and function names where the
// runtime could symbolicate, and PC-only frames where it could not.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	// Skip accounting:
	//   • +1 for runtime.Callers itself
	//   • +1 for captureStack
	//   • +1 for captureStackDefault
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Stack, 0, n)

	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// pkg/errors interop
// -----------------------------------------------------------------------------

// pkgStackTracer matches errors produced by github.com/pkg/errors (WithStack,
// Wrap, New). Its StackTrace is a []Frame of raw PCs we can re-resolve.
type pkgStackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// stackFromChain walks the cause chain outermost→innermost and lifts the
// DEEPEST external stack trace it finds into our Frame shape. The deepest
// trace is closest to the failure origin, matching how report handlers prefer
// the error-provided backtrace over their own capture.
//
// Returns nil when no link along the chain carries a pkg/errors-style trace.
func stackFromChain(err error) Stack {
	var deepest pkgerrors.StackTrace
	for _, link := range Chain(err) {
		if st, ok := link.(pkgStackTracer); ok {
			deepest = st.StackTrace()
		}
	}
	if len(deepest) == 0 {
		return nil
	}

	pcs := make([]uintptr, 0, len(deepest))
	for _, f := range deepest {
		pcs = append(pcs, uintptr(f))
	}
	frames := runtime.CallersFrames(pcs)
	out := make(Stack, 0, len(pcs))
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}
