//go:build !rp2040 && !rp2350

package critical

// Host builds have no interrupt controller to mask. The framework's execution
// model is single-context (one goroutine drives init/cleanup and driver
// operations to completion), so a nesting counter is enough to give Enter and
// Exit balanced, reentrant semantics matching the MCU implementation.
var depth uintptr

// Enter opens a critical section and returns the state to pass to Exit.
func Enter() uintptr {
	st := depth
	depth++
	return st
}

// Exit closes the section opened by the matching Enter. Unbalanced or
// out-of-order calls are programming errors and panic.
func Exit(st uintptr) {
	if depth == 0 {
		panic("critical: Exit without matching Enter")
	}
	depth--
	if depth != st {
		panic("critical: sections released out of order")
	}
}
