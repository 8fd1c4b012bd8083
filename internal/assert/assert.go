// Package assert provides the abort-style precondition check the
// estimator's search loops use for invariants that should never be
// false given correct callers (as opposed to recoverable errors from
// untrusted input). Grounded on the teacher's porting.go assert(bool),
// generalized with a formatted message the way JXL_ASSERT's call sites
// in enc_adaptive_quantization.cc carry one.
package assert

import "fmt"

// That panics with a formatted message if cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
