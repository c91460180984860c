// Package device defines the separation contract between stateless drivers
// and stateful device instances.
//
// A Driver holds no mutable fields of its own: every operation receives the
// owning device's state cell as an explicit parameter, so one driver value
// safely backs any number of device instances. A Device owns exactly one
// peripheral instance's configuration, operational state, and hardware
// handle, and delegates each operation to its driver for the duration of that
// call only.
//
// State cells are touched only inside the critical section (package
// critical), which is what protects them against interrupt reentry on MCU
// targets; there is no other locking in this model.
package device
