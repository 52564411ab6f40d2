// registry_test.go — verification of the install-once transition, builder
// configuration, and environment override precedence.
package xgxreport

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

func noEnv(string) string { return "" }

func TestInstall_OneWayTransition(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if r.Installed() {
		t.Fatalf("fresh registry reports installed")
	}
	if err := NewHookBuilder().InstallTo(r); err != nil {
		t.Fatalf("first install: %v", err)
	}
	if !r.Installed() {
		t.Fatalf("registry not installed after Install")
	}
}

func TestInstall_SecondCallReportsErrorAndKeepsFirstConfig(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := NewHookBuilder().CaptureStack(true).Color(ColorNever).InstallTo(r); err != nil {
		t.Fatalf("first install: %v", err)
	}
	err := NewHookBuilder().CaptureStack(false).Color(ColorAlways).InstallTo(r)
	if !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("second install error = %v, want ErrAlreadyInstalled", err)
	}

	conf, ok := r.snapshot()
	if !ok || !conf.captureStack || conf.color != ColorNever {
		t.Fatalf("first configuration not retained: %+v", conf)
	}
}

func TestInstall_RaceHasExactlyOneWinner(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	const N = 16
	var wg sync.WaitGroup
	results := make(chan error, N)
	for i := 0; i < N; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- NewHookBuilder().InstallTo(r)
		}()
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyInstalled):
			losses++
		default:
			t.Fatalf("unexpected install error: %v", err)
		}
	}
	if wins != 1 || losses != N-1 {
		t.Fatalf("wins=%d losses=%d, want 1/%d", wins, losses, N-1)
	}
}

func TestRender_BeforeInstallIsDistinctError(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.Render(errors.New("anything"))
	if !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("render-before-install error = %v, want ErrNotInstalled", err)
	}
}

func TestHookBuilder_CompiledInDefaults(t *testing.T) {
	t.Parallel()

	conf := NewHookBuilder().resolve(noEnv)
	if conf.captureStack {
		t.Fatalf("stack capture should default off")
	}
	if !conf.captureSpans {
		t.Fatalf("span capture should default on")
	}
	if conf.color != ColorAuto {
		t.Fatalf("color should default auto")
	}
	if conf.stackCap == nil || conf.spanCap == nil || conf.sink == nil {
		t.Fatalf("default collaborators/sink missing")
	}
}

func TestHookBuilder_EnvOverridesWinOverBuilder(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvBacktrace: "1",
		EnvSpanTrace: "0",
		EnvColor:     "never",
	}
	getenv := func(k string) string { return env[k] }

	conf := NewHookBuilder().
		CaptureStack(false).    // env says 1
		CaptureSpanTrace(true). // env says 0
		Color(ColorAlways).     // env says never
		resolve(getenv)

	if !conf.captureStack || conf.captureSpans || conf.color != ColorNever {
		t.Fatalf("env precedence violated: %+v", conf)
	}
}

func TestHookBuilder_UnparseableEnvFallsBackToBuilder(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvBacktrace: "maybe",
		EnvColor:     "sometimes",
	}
	getenv := func(k string) string { return env[k] }

	conf := NewHookBuilder().CaptureStack(true).Color(ColorAlways).resolve(getenv)
	if !conf.captureStack || conf.color != ColorAlways {
		t.Fatalf("unparseable env should not override builder: %+v", conf)
	}
}

func TestHookBuilder_EnvBoolSpellings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		val, ok bool
	}{
		{"", false, false},
		{"0", false, true},
		{"false", false, true},
		{"1", true, true},
		{"true", true, true},
		{"full", true, true},
		{"maybe", false, false},
	}
	for _, c := range cases {
		if v, ok := parseBoolEnv(c.in); v != c.val || ok != c.ok {
			t.Fatalf("parseBoolEnv(%q) = %v,%v want %v,%v", c.in, v, ok, c.val, c.ok)
		}
	}
}

func TestHookBuilder_DefaultSectionsCopyAttached(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	err := NewHookBuilder().
		CaptureSpanTrace(false).
		Color(ColorNever).
		AddSection(SectionAfter, func() string { return "Report bugs to https://xgx.io/bugs" }).
		InstallTo(r)
	if err != nil {
		t.Fatalf("install: %v", err)
	}

	a := r.newError("first", nil, 0)
	b := r.newError("second", nil, 0)
	_ = a.Note("only on a")

	if got := len(b.ReportContext().Sections()); got != 1 {
		t.Fatalf("sibling error sections = %d, want just the default", got)
	}
	text, err := r.Render(b)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Contains([]byte(text), []byte("Report bugs to")) {
		t.Fatalf("default section missing from report:\n%s", text)
	}
}

func TestColorEnabled_Resolution(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	if (registryConfig{color: ColorAlways, sink: buf}).colorEnabled() != true {
		t.Fatalf("ColorAlways should enable color")
	}
	if (registryConfig{color: ColorNever, sink: buf}).colorEnabled() != false {
		t.Fatalf("ColorNever should disable color")
	}
	// Auto against a non-TTY sink (a bytes.Buffer has no Fd) resolves false.
	if (registryConfig{color: ColorAuto, sink: buf}).colorEnabled() != false {
		t.Fatalf("ColorAuto against non-terminal sink should disable color")
	}
}
