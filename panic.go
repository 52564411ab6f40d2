// panic.go — the fault-handler path for uncaught panics.
//
// Go offers no process-global panic hook, so the handler is installed per
// goroutine with defer, conventionally right after Install in main:
//
//	defer xgxreport.RecoverPanic()
//
// The handler recovers, normalizes the panic value into a contextful error
// (adopting an already-attached Context, else capturing once), renders it
// with the SAME pure renderer as the library path, writes the report to the
// registry sink, and re-panics with the original value so abnormal
// termination proceeds with stdlib semantics intact.
//
// The handler runs in a crashing context: it must not itself panic. Rendering
// is wrapped in a recover guard that falls back to the raw message with no
// formatting, and a registry that was never installed degrades to the raw
// message on standard error rather than reporting ErrNotInstalled from inside
// a crash.
package xgxreport

import (
	"fmt"
	"io"
	"os"
)

// RecoverPanic is the package-level fault handler; see (*Registry).RecoverPanic.
func RecoverPanic() {
	if v := recover(); v != nil {
		defaultRegistry.reportPanic(v)
		panic(v)
	}
}

// RecoverPanic recovers a panic on the current goroutine, writes its full
// report to this registry's sink, and re-panics. A normal return (no panic in
// flight) is a no-op. Must be called directly via defer.
func (r *Registry) RecoverPanic() {
	if v := recover(); v != nil {
		r.reportPanic(v)
		panic(v)
	}
}

// reportPanic renders and writes the report for a recovered value. Degraded
// on every internal failure: the raw message is always emitted.
func (r *Registry) reportPanic(v any) {
	conf, installed := r.snapshot()
	sink := conf.sink
	if sink == nil {
		sink = os.Stderr
	}

	if !installed {
		fmt.Fprintf(sink, "panic: %v\n", v)
		return
	}

	err := r.fromPanicValue(v, 2)
	text, ok := safeRender(err, conf)
	if !ok {
		// Renderer failure must not cascade into a second fault.
		fmt.Fprintf(sink, "panic: %v\n", v)
		return
	}
	_, _ = io.WriteString(sink, "Panic report:\n"+text+"\n")
}

// safeRender shields the crashing goroutine from renderer faults.
func safeRender(err Error, conf registryConfig) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()
	th := plainTheme
	if conf.colorEnabled() {
		th = newColorTheme()
	}
	return renderReport(err, ReportContextOf(err), th), true
}
