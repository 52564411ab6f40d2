// spantrace.go — active-span tracking and snapshots for xgx-report.
//
// A span trace records the LOGICAL call context — the spans a goroutine has
// entered and not yet exited — as opposed to the physical call stack. Spans
// are explicit: callers bracket interesting regions with StartSpan/End and
// attach ordered key-value fields. Capture walks the current goroutine's open
// spans innermost-first and freezes them into an immutable SpanTrace.
//
// Scope (tiny core):
//   - Per-goroutine span stacks; goroutines never observe each other's spans.
//   - Snapshots are cheap relative to stack unwinding, which is why span
//     capture defaults on while stack capture defaults off.
//   - The tracker is a collaborator behind SpanCapturer and is swappable
//     (e.g., to bridge an external tracing system) via HookBuilder.
package xgxreport

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// Span is one frozen span in a SpanTrace: its name, the call site where it
// was opened, and its recorded fields in registration order.
type Span struct {
	Name   string
	File   string
	Line   int
	Fields []Field
}

// SpanTrace is a snapshot of active spans ordered innermost (most recently
// entered) first. A nil SpanTrace means "no spans"; whether that is "capture
// disabled" or "captured but none active" is recorded separately on Capture.
type SpanTrace []Span

// SpanCapturer is the trace-context collaborator: it snapshots the calling
// goroutine's active spans, innermost first.
type SpanCapturer func() SpanTrace

// spanRecord is a live (mutable-by-owner) node in a goroutine's span stack.
type spanRecord struct {
	name   string
	file   string
	line   int
	fields fields
	parent *spanRecord
}

// SpanTracker maintains per-goroutine stacks of open spans. The zero value is
// not usable; construct with NewSpanTracker. A single process normally uses
// the package-level tracker via StartSpan, but isolated instances keep tests
// hermetic.
type SpanTracker struct {
	mu     sync.Mutex
	active map[uint64]*spanRecord
}

// NewSpanTracker returns an empty tracker.
func NewSpanTracker() *SpanTracker {
	return &SpanTracker{active: make(map[uint64]*spanRecord)}
}

// defaultTracker backs the package-level StartSpan and the default
// SpanCapturer installed by HookBuilder.
var defaultTracker = NewSpanTracker()

// ActiveSpan is the handle returned by StartSpan. End MUST be called on the
// same goroutine that opened the span, conventionally via defer.
type ActiveSpan struct {
	tracker *SpanTracker
	gid     uint64
	rec     *spanRecord
}

// StartSpan opens a span on the package-level tracker and returns its handle.
//
// Example:
//
//	func readFile(path string) error {
//	    defer xgxreport.StartSpan("readFile", "path", path).End()
//	    ...
//	}
func StartSpan(name string, kv ...any) *ActiveSpan {
	return defaultTracker.start(name, 2, kv...)
}

// Start opens a span on this tracker. See StartSpan.
func (t *SpanTracker) Start(name string, kv ...any) *ActiveSpan {
	return t.start(name, 2, kv...)
}

// start records the caller at callerSkip frames above, pushes the span on the
// calling goroutine's stack, and returns the handle.
func (t *SpanTracker) start(name string, callerSkip int, kv ...any) *ActiveSpan {
	file, line := "", 0
	if _, f, l, ok := runtime.Caller(callerSkip); ok {
		file, line = f, l
	}
	gid := goroutineID()

	t.mu.Lock()
	rec := &spanRecord{
		name:   name,
		file:   file,
		line:   line,
		fields: ctxFromKV(kv...),
		parent: t.active[gid],
	}
	t.active[gid] = rec
	t.mu.Unlock()

	return &ActiveSpan{tracker: t, gid: gid, rec: rec}
}

// End closes the span. Closing out of order pops everything entered after
// this span as well, so a forgotten inner End cannot strand records forever.
// End is idempotent for the topmost span; closing an already-popped span is
// a no-op.
func (s *ActiveSpan) End() {
	if s == nil || s.tracker == nil {
		return
	}
	t := s.tracker
	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.active[s.gid]
	for cur != nil {
		if cur == s.rec {
			if s.rec.parent == nil {
				delete(t.active, s.gid)
			} else {
				t.active[s.gid] = s.rec.parent
			}
			return
		}
		cur = cur.parent
	}
	// Span no longer on this goroutine's stack: already closed.
}

// Capture snapshots the calling goroutine's open spans, innermost first.
// Returns an empty (non-nil) trace when spans exist on other goroutines but
// none on this one, and nil only when the tracker has never been touched by
// this goroutine — both render identically (block omitted).
func (t *SpanTracker) Capture() SpanTrace {
	gid := goroutineID()

	t.mu.Lock()
	rec := t.active[gid]
	t.mu.Unlock()

	if rec == nil {
		return nil
	}
	out := make(SpanTrace, 0, 4)
	for ; rec != nil; rec = rec.parent {
		out = append(out, Span{
			Name:   rec.name,
			File:   rec.file,
			Line:   rec.line,
			Fields: append([]Field(nil), rec.fields...),
		})
	}
	return out
}

// goroutineID extracts the numeric goroutine id from the first line of
// runtime.Stack output ("goroutine 18 [running]:"). The runtime offers no
// public accessor; this parse is bounded (one line, small buffer) and runs
// only on span start/end and capture, never on hot paths.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
