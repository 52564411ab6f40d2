// capture.go — the one-shot diagnostic snapshot taken at error construction.
//
// Contract:
//   - capture runs EXACTLY ONCE per triggering event; wrappers adopt the
//     existing Context instead of re-invoking it (stack walking is the one
//     moderately expensive operation in this package).
//   - Disabled capture is an explicit "absent" marker, distinct from
//     "captured but empty": the renderer omits the block for both, but
//     predicates and tests can tell them apart.
//   - Collaborator failures are absorbed: a panicking capturer degrades its
//     snapshot to whatever was obtained (usually nothing), never surfaces.
package xgxreport

// Capture packages the results (or recorded absence) of the two snapshot
// collaborators. Immutable once created.
type Capture struct {
	stack      Stack
	stackTaken bool // stack capture was enabled and attempted

	spans      SpanTrace
	spansTaken bool // span capture was enabled and attempted
}

// Stack returns the captured frames (nil when disabled or empty).
func (c Capture) Stack() Stack { return c.stack }

// StackCaptured reports whether stack capture was enabled and attempted,
// distinguishing "disabled" from "captured zero frames".
func (c Capture) StackCaptured() bool { return c.stackTaken }

// SpanTrace returns the captured spans (nil when disabled or none active).
func (c Capture) SpanTrace() SpanTrace { return c.spans }

// SpansCaptured reports whether span capture was enabled and attempted,
// distinguishing "disabled" from "no active trace".
func (c Capture) SpansCaptured() bool { return c.spansTaken }

// captureConfig is the frozen slice of registry configuration that capture
// needs: the two switches and the two collaborators.
type captureConfig struct {
	captureStack bool
	captureSpans bool
	stackCap     StackCapturer
	spanCap      SpanCapturer
}

// capture takes the diagnostic snapshot. skip counts caller frames between
// the user call site and this function, so recorded stacks start at (or very
// near) the place the error was constructed.
//
// Side effects: none beyond collaborator calls; no I/O, no global mutation.
func capture(conf captureConfig, skip int) Capture {
	var out Capture

	if conf.captureStack && conf.stackCap != nil {
		out.stackTaken = true
		out.stack = safeCaptureStack(conf.stackCap, skip+1)
	}
	if conf.captureSpans && conf.spanCap != nil {
		out.spansTaken = true
		out.spans = safeCaptureSpans(conf.spanCap)
	}
	return out
}

// safeCaptureStack shields capture from a faulty collaborator: a panic
// degrades to "no frames" rather than propagating out of error construction.
func safeCaptureStack(cap StackCapturer, skip int) (s Stack) {
	defer func() { _ = recover() }()
	return cap(skip + 1)
}

func safeCaptureSpans(cap SpanCapturer) (s SpanTrace) {
	defer func() { _ = recover() }()
	return cap()
}
