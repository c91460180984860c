// Package uart implements a stateless driver for a serial port.
package uart

import (
	"errors"

	"dedrv-go/device"
)

// DefaultBaud applies when the device config leaves Baud zero.
const DefaultBaud = 115200

// Port abstracts the serial transport. RP2 builds satisfy it with a uartx
// wrapper (see rp2.go); host tests use Loopback.
type Port interface {
	Configure(baud uint32) error
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
}

// Errors returned by the driver.
var (
	ErrNoPort   = errors.New("uart: no port handle")
	ErrNotReady = errors.New("uart: not configured")
)

// State is the per-device driver state.
type State struct {
	Port Port
	Baud uint32

	opened bool
}

// Driver operates serial devices. Stateless.
type Driver struct{}

// Init configures the port at the device's baud rate.
func (Driver) Init(st *device.State[State]) error {
	var err error
	st.With(func(s *State) {
		if s.Port == nil {
			err = ErrNoPort
			return
		}
		if s.Baud == 0 {
			s.Baud = DefaultBaud
		}
		err = s.Port.Configure(s.Baud)
		s.opened = err == nil
	})
	return err
}

// Cleanup marks the port closed. The transport itself stays configured;
// embedded UARTs have no meaningful power-off step at this layer.
func (Driver) Cleanup(st *device.State[State]) error {
	st.With(func(s *State) { s.opened = false })
	return nil
}

// Send writes p to the port.
func (Driver) Send(st *device.State[State], p []byte) (int, error) {
	var n int
	var err error
	st.With(func(s *State) {
		if !s.opened {
			err = ErrNotReady
			return
		}
		n, err = s.Port.Write(p)
	})
	return n, err
}

// Recv reads into p from the port.
func (Driver) Recv(st *device.State[State], p []byte) (int, error) {
	var n int
	var err error
	st.With(func(s *State) {
		if !s.opened {
			err = ErrNotReady
			return
		}
		n, err = s.Port.Read(p)
	})
	return n, err
}

// Serial is the capability view over one uart device.
type Serial struct {
	dev *device.Device[State]
}

// Access returns the capability view for dev.
func Access(dev *device.Device[State]) Serial { return Serial{dev: dev} }

func (s Serial) Write(p []byte) (int, error) { return Driver{}.Send(s.dev.State(), p) }
func (s Serial) Read(p []byte) (int, error)  { return Driver{}.Recv(s.dev.State(), p) }
