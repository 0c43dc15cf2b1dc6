package buddy

import "fmt"

// assert panics if cond is false.
//
// This is distinct from internal/debug.Assert, which is compiled out
// entirely unless the debug build tag is set, and is meant for expensive
// internal consistency checks a caller only pays for while debugging (see
// its use in pkg/xunsafe/layout). The checks here guard the contract
// violations spec'd out for this tree -- an out-of-range order, a double
// free, a derived index outside the array -- which must always fail loudly
// regardless of build configuration, the way the original source's
// `assert!` (as opposed to `debug_assert!`) does. They are never used for
// control flow.
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("buddy: "+format, args...))
	}
}
