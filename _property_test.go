package xgxreport

import (
	"errors"
	"strings"
	"testing"
	"testing/quick"
)

func TestQuickRenderDeterministic(t *testing.T) {
	property := func(heading, cause string) bool {
		err := &reportErr{msg: heading, cause: errors.New(cause)}
		ctx := newContext(Capture{
			stack:      Stack{{Function: "q.Fn", File: "q.go", Line: 1}},
			stackTaken: true,
		}, nil)
		a := renderReport(err, ctx, plainTheme)
		b := renderReport(err, ctx, plainTheme)
		return a == b
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("render determinism property failed: %v", err)
	}
}

func TestQuickColorStripsToPlain(t *testing.T) {
	property := func(heading, cause string) bool {
		if strings.ContainsRune(heading+cause, '\x1b') {
			return true // raw escapes in user text defeat the strip comparison
		}
		err := &reportErr{msg: heading, cause: errors.New(cause)}
		plain := renderReport(err, nil, plainTheme)
		colored := renderReport(err, nil, newColorTheme())
		return stripANSI(colored) == plain
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("color-strip property failed: %v", err)
	}
}

func TestQuickJoinChainKeepsAllChildrenReachable(t *testing.T) {
	property := func(msgA, msgB string) bool {
		a := errors.New(msgA)
		b := errors.New(msgB)
		joined := Join(a, b)
		return errors.Is(joined, a) && errors.Is(joined, b)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("join reachability property failed: %v", err)
	}
}
