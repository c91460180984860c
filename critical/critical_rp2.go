//go:build rp2040 || rp2350

package critical

import "runtime/interrupt"

// Enter masks interrupts and returns the previous mask state.
func Enter() uintptr {
	return uintptr(interrupt.Disable())
}

// Exit restores the interrupt mask saved by the matching Enter.
func Exit(st uintptr) {
	interrupt.Restore(interrupt.State(st))
}
