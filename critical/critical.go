// Package critical provides the scoped critical section used around every
// access to state shared with interrupt context.
//
// On RP2 targets Enter masks interrupts and Exit restores the saved mask, so
// sections nest naturally. The host implementation mirrors those semantics
// with a nesting counter. Sections must be released in LIFO order; With is
// the preferred form because it guarantees release on every exit path,
// including panics.
package critical

// With runs fn inside the critical section. The section is released on every
// exit path, including a panic escaping fn.
func With(fn func()) {
	st := Enter()
	defer Exit(st)
	fn()
}
