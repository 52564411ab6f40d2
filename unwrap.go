// unwrap.go — cause-chain traversal for the renderer and predicates.
//
// Scope (tiny core):
//   - Build the outermost→innermost chain the renderer consumes, from errors
//     of unknown depth and origin.
//   - Cooperate with BOTH unwrap forms: classic Unwrap() error and the
//     Go 1.20 multi form Unwrap() []error (errors.Join, multi-%w). Multi
//     nodes contribute their first child to the primary chain; the remaining
//     children are surfaced separately (see aggregated).
//   - Never hang or panic on hostile shapes: cycles are cut with a dual
//     seen-guard, depth is bounded.
//
// Design notes (Go ≥1.20):
//   - We must NOT use map[error] as a blanket “seen” set: interface values
//     whose dynamic type is not comparable will panic as map keys. Dual guard:
//       • seenErr (map[error]struct{})   — only for comparable dynamic types
//       • seenPtr (map[uintptr]struct{}) — pointer identity for pointer types
//     Non-comparable, non-pointer dynamics are treated as acyclic (and
//     bounded by depth).
package xgxreport

import (
	"errors"
	"reflect"
)

// single/multi unwrap interfaces (stdlib-compatible)
type singleUnwrapper interface{ Unwrap() error }
type multiUnwrapper interface{ Unwrap() []error }

// maxChainDepth bounds traversal so a pathological self-reproducing chain
// still terminates with a finite report.
const maxChainDepth = 256

// ---------- small helpers ----------------------------------------------------

// isComparable reports whether err's dynamic type is comparable (safe as a map key).
func isComparable(err error) bool {
	if err == nil {
		return false
	}
	switch err.(type) {
	case *reportErr, *multiErr:
		return true // fast path for package-local pointer types
	}
	return reflect.TypeOf(err).Comparable()
}

// ptrID returns a pointer identity for pointer-typed dynamic errors.
func ptrID(err error) (uintptr, bool) {
	if err == nil {
		return 0, false
	}
	rv := reflect.ValueOf(err)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Pointer(), true
	}
	return 0, false
}

// markSeen returns true if 'err' was newly marked; false if already seen.
// Uses seenErr for comparable dynamics, seenPtr for pointer-typed
// non-comparable. If err is neither, it is treated as acyclic (depth-bounded).
func markSeen(err error, seenErr map[error]struct{}, seenPtr map[uintptr]struct{}) bool {
	if err == nil {
		return false
	}
	if isComparable(err) {
		if _, dup := seenErr[err]; dup {
			return false
		}
		seenErr[err] = struct{}{}
		return true
	}
	if id, ok := ptrID(err); ok {
		if _, dup := seenPtr[id]; dup {
			return false
		}
		seenPtr[id] = struct{}{}
		return true
	}
	return true
}

// firstChild returns err's primary cause: Unwrap() error when present, else
// the first element of Unwrap() []error, else nil.
func firstChild(err error) error {
	if su, ok := err.(singleUnwrapper); ok {
		return su.Unwrap()
	}
	if mu, ok := err.(multiUnwrapper); ok {
		if kids := mu.Unwrap(); len(kids) > 0 {
			return kids[0]
		}
	}
	return nil
}

// ---------- traversal --------------------------------------------------------

// Chain returns the cause chain from err (outermost) to the root cause,
// following primary causes only. The result always has length ≥ 1 for a
// non-nil err; cycles and excessive depth are cut silently.
func Chain(err error) []error {
	if err == nil {
		return nil
	}
	seenErr := make(map[error]struct{})
	seenPtr := make(map[uintptr]struct{})

	out := make([]error, 0, 4)
	for err != nil && len(out) < maxChainDepth {
		if !markSeen(err, seenErr, seenPtr) {
			break
		}
		out = append(out, err)
		err = firstChild(err)
	}
	return out
}

// Walk visits err and its primary-cause descendants outermost-first, stopping
// early when fn returns false. Cycle- and depth-guarded like Chain.
func Walk(err error, fn func(error) bool) {
	for _, link := range Chain(err) {
		if !fn(link) {
			return
		}
	}
}

// Root returns the innermost error of the primary chain (nil for nil input).
func Root(err error) error {
	chain := Chain(err)
	if len(chain) == 0 {
		return nil
	}
	return chain[len(chain)-1]
}

// aggregated collects the NON-primary children of any multi-error nodes along
// the chain, in chain order then child order. These render as numbered
// "Error N:" blocks after the capture context, so a joined error never loses
// its siblings even though only the first child joins the primary chain.
func aggregated(chain []error) []error {
	var out []error
	for _, link := range chain {
		if mu, ok := link.(multiUnwrapper); ok {
			if kids := mu.Unwrap(); len(kids) > 1 {
				out = append(out, kids[1:]...)
			}
		}
	}
	return out
}

// Has is a nil-safe wrapper over errors.Is.
func Has(err, target error) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.Is(err, target)
}
