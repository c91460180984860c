// Package gpio implements a stateless driver for a single GPIO line.
//
// Per-instance data (the pin handle, mode, polarity) lives in State and is
// owned by the device; the Driver value carries nothing and can back any
// number of GPIO devices.
package gpio

import (
	"errors"

	"dedrv-go/device"
)

// Pull is the input pull configuration.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Mode selects the line direction.
type Mode uint8

const (
	Input Mode = iota
	Output
)

// Pin abstracts one GPIO line. MCU builds satisfy it with machine pins;
// tests use fakes.
type Pin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
}

// Errors returned by the driver.
var (
	ErrNoPin     = errors.New("gpio: no pin handle")
	ErrNotOutput = errors.New("gpio: not an output")
	ErrNotReady  = errors.New("gpio: not initialized")
)

// State is the per-device driver state: configuration plus the hardware
// handle, seeded at device construction.
type State struct {
	Pin     Pin
	Mode    Mode
	Pull    Pull // inputs only
	Initial bool // outputs only
	Invert  bool

	ready bool
}

// Driver operates GPIO devices. It is stateless; every operation receives
// the owning device's state.
type Driver struct{}

// Init configures the line according to the device's seeded configuration.
func (Driver) Init(st *device.State[State]) error {
	var err error
	st.With(func(s *State) {
		if s.Pin == nil {
			err = ErrNoPin
			return
		}
		switch s.Mode {
		case Input:
			err = s.Pin.ConfigureInput(s.Pull)
		case Output:
			level := s.Initial
			if s.Invert {
				level = !level
			}
			err = s.Pin.ConfigureOutput(level)
		}
		s.ready = err == nil
	})
	return err
}

// Cleanup parks an output low (respecting polarity) and marks the line
// unconfigured.
func (Driver) Cleanup(st *device.State[State]) error {
	st.With(func(s *State) {
		if s.ready && s.Mode == Output {
			s.Pin.Set(s.Invert)
		}
		s.ready = false
	})
	return nil
}

// SetValue drives an output line. Polarity inversion is applied here so
// callers always speak in logical levels.
func (Driver) SetValue(st *device.State[State], level bool) error {
	var err error
	st.With(func(s *State) {
		switch {
		case !s.ready:
			err = ErrNotReady
		case s.Mode != Output:
			err = ErrNotOutput
		default:
			if s.Invert {
				level = !level
			}
			s.Pin.Set(level)
		}
	})
	return err
}

// GetValue samples the line's logical level.
func (Driver) GetValue(st *device.State[State]) (bool, error) {
	var level bool
	var err error
	st.With(func(s *State) {
		if !s.ready {
			err = ErrNotReady
			return
		}
		level = s.Pin.Get()
		if s.Invert {
			level = !level
		}
	})
	return level, err
}

// Gpio is the capability view over one GPIO device: the stateless driver
// bound to that device's state for call-site convenience.
type Gpio struct {
	dev *device.Device[State]
}

// Access returns the capability view for dev.
func Access(dev *device.Device[State]) Gpio { return Gpio{dev: dev} }

func (g Gpio) Set(level bool) error { return Driver{}.SetValue(g.dev.State(), level) }
func (g Gpio) Get() (bool, error)   { return Driver{}.GetValue(g.dev.State()) }
