// registry.go — process-wide, install-once hook registration for xgx-report.
//
// The registry is the one piece of mutable state in this package, modeled as
// an explicit cell with a guarded one-way transition (Uninitialized →
// Installed) rather than ambient globals. A package-level default serves the
// normal "install in main" flow; tests construct isolated instances with
// NewRegistry so nothing leaks across test cases.
//
// Configuration is assembled on a HookBuilder, resolved against environment
// overrides exactly once at install time, and frozen for the registry's
// lifetime afterwards. A second install attempt is a reported configuration
// error, never a silent overwrite.
package xgxreport

import (
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Configuration errors surfaced by the registry.
var (
	// ErrAlreadyInstalled is returned by Install when hooks were installed
	// earlier in the process; the original configuration is retained.
	ErrAlreadyInstalled = errors.New("xgxreport: hooks already installed")

	// ErrNotInstalled is returned when a report is requested through a
	// registry whose hooks were never installed. This is a programming
	// error, distinct from a capture failure (which degrades silently).
	ErrNotInstalled = errors.New("xgxreport: hooks not installed")
)

// ColorMode controls colorization of rendered reports.
type ColorMode int

const (
	// ColorAuto enables color when the output sink is an interactive terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces color on.
	ColorAlways
	// ColorNever forces color off.
	ColorNever
)

// Environment variables resolved at install time. Set and parseable values
// win over the builder's compiled-in defaults; anything else falls through.
const (
	EnvBacktrace = "XGX_BACKTRACE" // "0"/"1" (and strconv.ParseBool forms)
	EnvSpanTrace = "XGX_SPANTRACE" // "0"/"1"
	EnvColor     = "XGX_COLOR"     // "always"/"never"/"auto"
)

// registryConfig is the frozen configuration of an installed registry.
type registryConfig struct {
	captureConfig
	color           ColorMode
	defaultSections []Section
	sink            io.Writer
}

// colorEnabled resolves the effective color flag once per render, querying
// the sink for TTY-ness only in ColorAuto mode.
func (c registryConfig) colorEnabled() bool {
	switch c.color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		type fdWriter interface{ Fd() uintptr }
		if f, ok := c.sink.(fdWriter); ok {
			return term.IsTerminal(int(f.Fd()))
		}
		return false
	}
}

// Registry is the install-once hook registration point. The zero value is
// usable and uninstalled; NewRegistry is provided for symmetry and clarity.
type Registry struct {
	mu        sync.Mutex
	installed bool
	conf      registryConfig
}

// NewRegistry returns an uninstalled registry, independent of the
// package-level default. Intended for tests and embedded tooling.
func NewRegistry() *Registry { return &Registry{} }

// defaultRegistry backs the package-level Install/Render/RecoverPanic and
// the error constructors in construct.go.
var defaultRegistry = NewRegistry()

// Install installs the default configuration on the package-level registry.
// Equivalent to NewHookBuilder().Install().
func Install() error {
	return NewHookBuilder().InstallTo(defaultRegistry)
}

// Installed reports whether this registry completed its one-way transition.
func (r *Registry) Installed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installed
}

// snapshot returns the frozen configuration and whether the registry is
// installed. The config is a value copy; callers cannot mutate the registry
// through it.
func (r *Registry) snapshot() (registryConfig, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conf, r.installed
}

// install performs the guarded one-way transition. Exactly one caller wins a
// startup race; losers get ErrAlreadyInstalled and the winner's configuration
// stays intact.
func (r *Registry) install(conf registryConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.installed {
		return ErrAlreadyInstalled
	}
	r.conf = conf
	r.installed = true
	return nil
}

// -----------------------------------------------------------------------------
// HookBuilder
// -----------------------------------------------------------------------------

// HookBuilder assembles registry configuration before installation. Builders
// are single-goroutine values; the frozen result, not the builder, is what
// concurrent code observes after Install.
type HookBuilder struct {
	captureStack bool
	captureSpans bool
	color        ColorMode
	sections     []Section
	stackCap     StackCapturer
	spanCap      SpanCapturer
	sink         io.Writer
}

// NewHookBuilder returns a builder with the compiled-in defaults: stack
// capture off (unwinding is the expensive path), span capture on (snapshots
// are cheap), color auto, panic reports to standard error.
func NewHookBuilder() *HookBuilder {
	return &HookBuilder{
		captureStack: false,
		captureSpans: true,
		color:        ColorAuto,
		stackCap:     captureStackDefault,
		spanCap:      defaultTracker.Capture,
		sink:         os.Stderr,
	}
}

// CaptureStack toggles stack capture for errors constructed after install.
func (b *HookBuilder) CaptureStack(on bool) *HookBuilder {
	b.captureStack = on
	return b
}

// CaptureSpanTrace toggles span-trace capture.
func (b *HookBuilder) CaptureSpanTrace(on bool) *HookBuilder {
	b.captureSpans = on
	return b
}

// Color sets the color mode (auto resolves against the sink at render time).
func (b *HookBuilder) Color(mode ColorMode) *HookBuilder {
	b.color = mode
	return b
}

// AddSection registers a default section copy-attached to every new Context.
// Registration order is preserved within each kind.
func (b *HookBuilder) AddSection(kind SectionKind, produce func() string) *HookBuilder {
	b.sections = append(b.sections, Section{Kind: kind, Produce: produce})
	return b
}

// StackCapturer swaps the stack-unwind collaborator (nil restores the default).
func (b *HookBuilder) StackCapturer(cap StackCapturer) *HookBuilder {
	if cap == nil {
		cap = captureStackDefault
	}
	b.stackCap = cap
	return b
}

// SpanCapturer swaps the trace-context collaborator (nil restores the default).
func (b *HookBuilder) SpanCapturer(cap SpanCapturer) *HookBuilder {
	if cap == nil {
		cap = defaultTracker.Capture
	}
	b.spanCap = cap
	return b
}

// Output redirects the fault-handler sink (default os.Stderr). Primarily for
// tests and embedded tooling; library-path rendering returns text instead of
// writing anywhere.
func (b *HookBuilder) Output(w io.Writer) *HookBuilder {
	if w != nil {
		b.sink = w
	}
	return b
}

// Install resolves environment overrides and installs on the package-level
// registry. Returns ErrAlreadyInstalled on a second call.
func (b *HookBuilder) Install() error {
	return b.InstallTo(defaultRegistry)
}

// InstallTo is Install against an explicit registry instance.
func (b *HookBuilder) InstallTo(r *Registry) error {
	return r.install(b.resolve(os.Getenv))
}

// resolve freezes the builder into a registryConfig, applying environment
// overrides. Resolution order (documented contract): a set and parseable env
// var wins; otherwise the builder's compiled-in value stands.
func (b *HookBuilder) resolve(getenv func(string) string) registryConfig {
	conf := registryConfig{
		captureConfig: captureConfig{
			captureStack: b.captureStack,
			captureSpans: b.captureSpans,
			stackCap:     b.stackCap,
			spanCap:      b.spanCap,
		},
		color: b.color,
		sink:  b.sink,
	}
	if len(b.sections) > 0 {
		conf.defaultSections = make([]Section, len(b.sections))
		copy(conf.defaultSections, b.sections)
	}

	if v, ok := parseBoolEnv(getenv(EnvBacktrace)); ok {
		conf.captureStack = v
	}
	if v, ok := parseBoolEnv(getenv(EnvSpanTrace)); ok {
		conf.captureSpans = v
	}
	if m, ok := parseColorEnv(getenv(EnvColor)); ok {
		conf.color = m
	}
	return conf
}

// parseBoolEnv accepts the usual bool spellings plus "full" (an alias for
// enabled, so XGX_BACKTRACE=full keeps working if verbosity levels grow).
func parseBoolEnv(s string) (val, ok bool) {
	switch s {
	case "":
		return false, false
	case "0", "false", "FALSE", "False", "f", "F":
		return false, true
	case "1", "true", "TRUE", "True", "t", "T", "full":
		return true, true
	default:
		return false, false
	}
}

func parseColorEnv(s string) (ColorMode, bool) {
	switch s {
	case "always", "1":
		return ColorAlways, true
	case "never", "0":
		return ColorNever, true
	case "auto":
		return ColorAuto, true
	default:
		return ColorAuto, false
	}
}
