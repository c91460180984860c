package device

import "dedrv-go/critical"

// State is the lock-protected driver state owned by one device instance.
// Access goes through With/Get/Set, which hold the critical section for the
// duration of the access and never longer.
type State[S any] struct {
	val S
}

// With runs fn with exclusive access to the state.
func (s *State[S]) With(fn func(*S)) {
	critical.With(func() { fn(&s.val) })
}

// Get returns a copy of the current state.
func (s *State[S]) Get() S {
	var v S
	s.With(func(p *S) { v = *p })
	return v
}

// Set replaces the state.
func (s *State[S]) Set(v S) {
	s.With(func(p *S) { *p = v })
}

// Driver is a stateless peripheral implementation. Implementations must not
// retain the state pointer across calls; it is only valid for the duration
// of the operation it was passed to.
type Driver[S any] interface {
	Init(state *State[S]) error
	Cleanup(state *State[S]) error
}

// Device binds one peripheral instance's state to a shared driver.
// State starts zeroed; use NewWith to seed per-instance configuration.
type Device[S any] struct {
	state State[S]
	drv   Driver[S]
}

// New creates a device with zeroed state.
func New[S any](drv Driver[S]) *Device[S] {
	return &Device[S]{drv: drv}
}

// NewWith creates a device with seeded state, typically carrying the
// instance's configuration and hardware handle.
func NewWith[S any](drv Driver[S], seed S) *Device[S] {
	d := &Device[S]{drv: drv}
	d.state.val = seed
	return d
}

// Init runs the driver's init operation on this instance's state.
func (d *Device[S]) Init() error { return d.drv.Init(&d.state) }

// Cleanup runs the driver's cleanup operation on this instance's state.
func (d *Device[S]) Cleanup() error { return d.drv.Cleanup(&d.state) }

// State exposes the state cell for capability operations on this device.
func (d *Device[S]) State() *State[S] { return &d.state }
