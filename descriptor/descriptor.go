// Package descriptor defines the fixed-layout record describing one device
// registration: identity, init priority, and the lifecycle hooks bound to
// that device instance.
//
// Descriptors exist in two forms. The in-memory form below is what the
// registry stores and the lifecycle manager consumes. The packed wire form in
// record.go is the fixed-size binary layout used when a registry is loaded
// from a build-emitted descriptor region instead of process-wide
// registration.
package descriptor

import "fmt"

// MaxIDLen bounds the identifier so packed name tables stay small and ids
// remain usable as report keys.
const MaxIDLen = 64

// Hook is a zero-argument lifecycle operation bound to one device instance.
// A nil error means success.
type Hook func() error

// Hooks pairs the two lifecycle operations of one device.
type Hooks struct {
	Init    Hook
	Cleanup Hook
}

// Descriptor describes one registered device.
//
// ID is fixed at the declaration site and must be unique across the whole
// registry; uniqueness is only verifiable once all registrations are visible,
// so the lifecycle scan checks it, not the registration path.
//
// Priority orders the init pass ascending; the cleanup pass runs in the exact
// reverse of the realized init order.
type Descriptor struct {
	ID       string
	Priority int32
	Init     Hook
	Cleanup  Hook
}

// Check verifies the declaration-site invariants a single registration can
// enforce on its own: a usable id and both hooks present.
func (d Descriptor) Check() error {
	if d.ID == "" {
		return fmt.Errorf("descriptor: empty id")
	}
	if len(d.ID) > MaxIDLen {
		return fmt.Errorf("descriptor: id %q exceeds %d bytes", d.ID, MaxIDLen)
	}
	if d.Init == nil || d.Cleanup == nil {
		return fmt.Errorf("descriptor %q: nil lifecycle hook", d.ID)
	}
	return nil
}
